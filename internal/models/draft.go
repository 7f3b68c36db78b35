package models

// ConfigDraft is the in-progress, not-yet-submitted configuration form.
// Every value stays the raw string the user typed until submission.
type ConfigDraft struct {
	StorageType      string `json:"storageType"`
	MinTemp          string `json:"minTemp"`     // °C
	MaxTemp          string `json:"maxTemp"`     // °C
	MaxHumidity      string `json:"maxHumidity"` // %
	FacilityName     string `json:"facilityName"`
	Location         string `json:"location"`
	Capacity         string `json:"capacity"`
	AlertEmail       string `json:"alertEmail"`
	AlertPhone       string `json:"alertPhone"`
	EmergencyContact string `json:"emergencyContact"`
}

// Form field names, matching the JSON keys above.
const (
	FieldStorageType      = "storageType"
	FieldMinTemp          = "minTemp"
	FieldMaxTemp          = "maxTemp"
	FieldMaxHumidity      = "maxHumidity"
	FieldFacilityName     = "facilityName"
	FieldLocation         = "location"
	FieldCapacity         = "capacity"
	FieldAlertEmail       = "alertEmail"
	FieldAlertPhone       = "alertPhone"
	FieldEmergencyContact = "emergencyContact"
)

// DraftFields lists every editable field in form order.
var DraftFields = []string{
	FieldStorageType,
	FieldMinTemp,
	FieldMaxTemp,
	FieldMaxHumidity,
	FieldFacilityName,
	FieldLocation,
	FieldCapacity,
	FieldAlertEmail,
	FieldAlertPhone,
	FieldEmergencyContact,
}

func (d *ConfigDraft) ref(field string) *string {
	switch field {
	case FieldStorageType:
		return &d.StorageType
	case FieldMinTemp:
		return &d.MinTemp
	case FieldMaxTemp:
		return &d.MaxTemp
	case FieldMaxHumidity:
		return &d.MaxHumidity
	case FieldFacilityName:
		return &d.FacilityName
	case FieldLocation:
		return &d.Location
	case FieldCapacity:
		return &d.Capacity
	case FieldAlertEmail:
		return &d.AlertEmail
	case FieldAlertPhone:
		return &d.AlertPhone
	case FieldEmergencyContact:
		return &d.EmergencyContact
	}
	return nil
}

// Get returns the raw value of a field; ok is false for unknown names.
func (d ConfigDraft) Get(field string) (value string, ok bool) {
	p := d.ref(field)
	if p == nil {
		return "", false
	}
	return *p, true
}

// Set assigns a field and reports whether the name was known.
func (d *ConfigDraft) Set(field, value string) bool {
	p := d.ref(field)
	if p == nil {
		return false
	}
	*p = value
	return true
}

// IsKnownField reports whether name is one of DraftFields.
func IsKnownField(name string) bool {
	var d ConfigDraft
	return d.ref(name) != nil
}
