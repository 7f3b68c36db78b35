package sensorsim

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const msgMissingFields = "Missing one of the required fields: storageType, minTemp, maxTemp, maxHumidity"

// Response shapes for the read endpoint, chosen with ?shape=.
const (
	ShapeWrapped = "wrapped" // {"statusCode":200,"headers":{...},"body":"<json>"}
	ShapeObject  = "object"  // {"statusCode":200,"body":{"data":[...]}}
	ShapeDirect  = "direct"  // {"data":[...]}
)

var lambdaHeaders = map[string]string{
	"Content-Type":                 "application/json",
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Methods": "GET,OPTIONS",
	"Access-Control-Allow-Headers": "Content-Type",
}

// configRequest mirrors the write endpoint payload. Pointers tell missing from zero.
type configRequest struct {
	StorageType string   `json:"storageType"`
	MinTemp     *float64 `json:"minTemp"`
	MaxTemp     *float64 `json:"maxTemp"`
	MaxHumidity *float64 `json:"maxHumidity"`
}

// Routes registers the simulator endpoints on r.
func (s *Simulator) Routes(r gin.IRouter) {
	r.GET("/sensors", s.getSensors)
	r.POST("/config", s.postConfig)
	r.GET("/config", s.getConfig)
}

func (s *Simulator) getSensors(c *gin.Context) {
	data := gin.H{"data": s.Latest()}

	switch strings.ToLower(c.DefaultQuery("shape", ShapeWrapped)) {
	case ShapeDirect:
		c.JSON(http.StatusOK, data)
	case ShapeObject:
		c.JSON(http.StatusOK, gin.H{"statusCode": http.StatusOK, "body": data})
	default:
		body, err := json.Marshal(data)
		if err != nil {
			s.log.Errorw("sim_encode_failed", "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error: " + err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"statusCode": http.StatusOK,
			"headers":    lambdaHeaders,
			"body":       string(body),
		})
	}
}

func (s *Simulator) postConfig(c *gin.Context) {
	var req configRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid body: " + err.Error()})
		return
	}
	if req.StorageType == "" || req.MinTemp == nil || req.MaxTemp == nil || req.MaxHumidity == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": msgMissingFields,
			"debug": gin.H{
				"storageType": req.StorageType,
				"minTemp":     req.MinTemp,
				"maxTemp":     req.MaxTemp,
				"maxHumidity": req.MaxHumidity,
			},
		})
		return
	}

	s.SetThresholds(Thresholds{
		ProfileName: req.StorageType,
		MinTemp:     *req.MinTemp,
		MaxTemp:     *req.MaxTemp,
		MaxHumidity: *req.MaxHumidity,
	})
	c.JSON(http.StatusOK, gin.H{"message": "Active thresholds set to: " + req.StorageType})
}

func (s *Simulator) getConfig(c *gin.Context) {
	c.JSON(http.StatusOK, s.Thresholds())
}
