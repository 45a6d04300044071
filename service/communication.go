package service

import (
	"github.com/gin-gonic/gin"
	"virustrace/graph"
	"virustrace/logs"
	"virustrace/models"
)

type CommunicationsData struct {
	Communications []graph.Triple `json:"communications"`
}

// HandleStoreCommunications appends the posted triples to a stored batch.
func HandleStoreCommunications(c *gin.Context) {
	var req CommunicationsData
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, CodeBadRequest, err.Error())
		return
	}
	db := models.GetMysqlDB()
	if db == nil {
		fail(c, CodeNoDatabase, "database not configured")
		return
	}
	batch := c.Param("batch")
	n, err := models.SaveBatch(db, batch, req.Communications)
	if err != nil {
		logs.Logger.WithError(err).Errorf("failed to store batch %s", batch)
		fail(c, CodeDBFailure, err.Error())
		return
	}
	succeed(c, gin.H{"batch": batch, "stored": n})
}
