package service

import (
	"errors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"virustrace/conf"
	"virustrace/graph"
	"virustrace/helper"
	"virustrace/logs"
	"virustrace/models"
	"virustrace/report"
)

type TraceRequest struct {
	Communications []graph.Triple `json:"communications"`
	Query          graph.Query    `json:"query"`
}

type TraceResponse struct {
	RequestID string      `json:"requestID"`
	Found     bool        `json:"found"`
	Verdict   string      `json:"verdict"`
	Hop       *graph.Hop  `json:"hop,omitempty"`
	Path      []graph.Hop `json:"path,omitempty"`
	Trace     []string    `json:"trace"`
}

// runTrace searches g and collects the expansion lines for the response.
func runTrace(requestID string, g *graph.Graph, q graph.Query) (TraceResponse, graph.Result, error) {
	entry := logs.Logger.WithFields(logrus.Fields{"request": requestID, "source": q.Source, "target": q.Target})
	resp := TraceResponse{RequestID: requestID, Trace: []string{}}
	res, err := g.Search(q, graph.WithTracer(func(t graph.Trace) {
		line := report.TraceLine(t)
		if conf.Config.Trace.Verbose {
			entry.Debug(line)
		}
		resp.Trace = append(resp.Trace, line)
	}))
	if err != nil {
		entry.WithError(err).Warn("trace rejected")
		return resp, res, err
	}
	resp.Found = res.Found
	resp.Verdict = report.Verdict(res)
	if res.Found {
		hop := res.Hop
		resp.Hop = &hop
		resp.Path = res.Path
	}
	entry.Infof("trace finished: %s", helper.MyStringIf(res.Found, "infected", "safe"))
	return resp, res, nil
}

func traceFailure(c *gin.Context, err error) {
	if errors.Is(err, graph.ErrUnknownNode) {
		fail(c, CodeUnknownNode, err.Error())
		return
	}
	fail(c, CodeBadRequest, err.Error())
}

// HandleTrace builds a graph from the posted communications and answers the query.
func HandleTrace(c *gin.Context) {
	var req TraceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, CodeBadRequest, err.Error())
		return
	}
	g := graph.Build(0, req.Communications)
	resp, _, err := runTrace(uuid.NewString(), g, req.Query)
	if err != nil {
		traceFailure(c, err)
		return
	}
	succeed(c, resp)
}

// HandleStoredTrace answers a query against a batch stored in the database
// and records the verdict.
func HandleStoredTrace(c *gin.Context) {
	db := models.GetMysqlDB()
	if db == nil {
		fail(c, CodeNoDatabase, "database not configured")
		return
	}
	q, err := queryFromParams(c)
	if err != nil {
		fail(c, CodeBadRequest, err.Error())
		return
	}
	batch := c.Param("batch")
	triples, err := models.LoadBatch(db, batch)
	if err != nil {
		logs.Logger.WithError(err).Errorf("failed to load batch %s", batch)
		fail(c, CodeDBFailure, err.Error())
		return
	}
	requestID := uuid.NewString()
	resp, res, err := runTrace(requestID, graph.Build(0, triples), q)
	if err != nil {
		traceFailure(c, err)
		return
	}
	record := models.NewTraceRecord(requestID, batch, q, res)
	if err := models.SaveTrace(db, &record); err != nil {
		logs.Logger.WithError(err).Warnf("failed to record trace %s", requestID)
	}
	succeed(c, resp)
}

func queryFromParams(c *gin.Context) (graph.Query, error) {
	var q graph.Query
	for _, f := range []struct {
		name string
		dst  *int64
	}{
		{"source", &q.Source},
		{"minTime", &q.MinTime},
		{"target", &q.Target},
		{"maxTime", &q.MaxTime},
	} {
		v, err := helper.ParseID(c.Query(f.name))
		if err != nil {
			return q, errors.New("invalid or missing query parameter " + f.name)
		}
		*f.dst = v
	}
	return q, nil
}
