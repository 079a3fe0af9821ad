package api

import (
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"edascope/domain/table"
	"edascope/internal/analysis"
)

// QualityRequest carries pre-aggregated dataset features for stub scoring.
type QualityRequest struct {
	NRows           int     `json:"n_rows" binding:"gte=0"`
	NCols           int     `json:"n_cols" binding:"gte=0"`
	MaxMissingShare float64 `json:"max_missing_share" binding:"gte=0,lte=1"`
	NumericCols     int     `json:"numeric_cols" binding:"gte=0"`
	CategoricalCols int     `json:"categorical_cols" binding:"gte=0"`
}

// QualityResponse is the scoring reply shared by /quality and
// /quality-from-csv.
type QualityResponse struct {
	OkForModel   bool            `json:"ok_for_model"`
	QualityScore float64         `json:"quality_score"`
	Message      string          `json:"message"`
	LatencyMS    float64         `json:"latency_ms"`
	Flags        map[string]bool `json:"flags,omitempty"`
	DatasetShape map[string]int  `json:"dataset_shape,omitempty"`
}

// QualityFlagsResponse carries the full flag mapping, numeric entries included.
type QualityFlagsResponse struct {
	Flags     map[string]interface{} `json:"flags"`
	NRows     int                    `json:"n_rows"`
	NCols     int                    `json:"n_cols"`
	LatencyMS float64                `json:"latency_ms"`
}

// okScoreThreshold is the score at which a dataset is deemed ready for model
// training by this service's responses.
const okScoreThreshold = 0.7

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": serviceName,
		"version": serviceVersion,
	})
}

// handleQuality applies the simplified stub heuristic to pre-aggregated
// features. It intentionally does NOT use the core evaluator: callers get a
// quick estimate without uploading data.
func (s *Server) handleQuality(c *gin.Context) {
	start := time.Now()

	var req QualityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logExtra(c, "error", "invalid_request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quality request: " + err.Error()})
		return
	}

	score := 1.0
	score -= req.MaxMissingShare
	if req.NRows < 1000 {
		score -= 0.2
	}
	if req.NCols > 100 {
		score -= 0.1
	}
	if req.NumericCols == 0 && req.CategoricalCols > 0 {
		score -= 0.1
	}
	if req.CategoricalCols == 0 && req.NumericCols > 0 {
		score -= 0.05
	}
	score = math.Max(0.0, math.Min(1.0, score))

	okForModel := score >= okScoreThreshold
	message := "Dataset looks sufficient for model training (by current heuristics)."
	if !okForModel {
		message = "Data quality is insufficient, rework is needed (by current heuristics)."
	}

	logExtra(c, "ok_for_model", okForModel)
	logExtra(c, "n_rows", req.NRows)
	logExtra(c, "n_cols", req.NCols)
	logExtra(c, "quality_score", round3(score))
	logExtra(c, "max_missing_share", round3(req.MaxMissingShare))

	c.JSON(http.StatusOK, QualityResponse{
		OkForModel:   okForModel,
		QualityScore: score,
		Message:      message,
		LatencyMS:    latencyMS(start),
		Flags: map[string]bool{
			"too_few_rows":           req.NRows < 1000,
			"too_many_columns":       req.NCols > 100,
			"too_many_missing":       req.MaxMissingShare > 0.5,
			"no_numeric_columns":     req.NumericCols == 0,
			"no_categorical_columns": req.CategoricalCols == 0,
		},
		DatasetShape: map[string]int{"n_rows": req.NRows, "n_cols": req.NCols},
	})
}

// handleQualityFromCSV runs the real analysis pipeline on an uploaded CSV and
// returns the score plus boolean-only flags.
func (s *Server) handleQualityFromCSV(c *gin.Context) {
	start := time.Now()

	tbl, ok := s.tableFromUpload(c)
	if !ok {
		return
	}

	summary := analysis.Summarize(tbl)
	missing := analysis.Missing(tbl)
	flags, err := analysis.EvaluateQuality(summary, missing, tbl, s.quality)
	if err != nil {
		logExtra(c, "error", "evaluation_failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "quality evaluation failed: " + err.Error()})
		return
	}

	okForModel := flags.QualityScore >= okScoreThreshold
	message := "CSV looks good enough for model training (by current heuristics)."
	if !okForModel {
		message = "CSV needs rework before model training (by current heuristics)."
	}

	logExtra(c, "ok_for_model", okForModel)
	logExtra(c, "n_rows", summary.NRows)
	logExtra(c, "n_cols", summary.NCols)
	logExtra(c, "quality_score", round3(flags.QualityScore))

	c.JSON(http.StatusOK, QualityResponse{
		OkForModel:   okForModel,
		QualityScore: flags.QualityScore,
		Message:      message,
		LatencyMS:    latencyMS(start),
		Flags:        flags.BoolMap(),
		DatasetShape: map[string]int{"n_rows": summary.NRows, "n_cols": summary.NCols},
	})
}

// handleQualityFlagsFromCSV returns the FULL flag mapping for an uploaded
// CSV, including quality_score and max_missing_share.
func (s *Server) handleQualityFlagsFromCSV(c *gin.Context) {
	start := time.Now()

	tbl, ok := s.tableFromUpload(c)
	if !ok {
		return
	}

	summary := analysis.Summarize(tbl)
	missing := analysis.Missing(tbl)
	flags, err := analysis.EvaluateQuality(summary, missing, tbl, s.quality)
	if err != nil {
		logExtra(c, "error", "evaluation_failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "quality evaluation failed: " + err.Error()})
		return
	}

	fullFlags := flags.Map()
	logExtra(c, "n_rows", summary.NRows)
	logExtra(c, "n_cols", summary.NCols)
	logExtra(c, "flags_count", len(fullFlags))
	logExtra(c, "has_constant_columns", flags.HasConstantColumns)
	logExtra(c, "has_many_zero_values", flags.HasManyZeroValues)

	c.JSON(http.StatusOK, QualityFlagsResponse{
		Flags:     fullFlags,
		NRows:     summary.NRows,
		NCols:     summary.NCols,
		LatencyMS: latencyMS(start),
	})
}

// allowed upload content types; octet-stream is accepted because many clients
// do not set a CSV-specific type on multipart parts.
var allowedContentTypes = map[string]bool{
	"text/csv":                 true,
	"application/vnd.ms-excel": true,
	"application/octet-stream": true,
}

// tableFromUpload validates and parses the multipart "file" field. On any
// rejection it writes the 4xx response itself and returns ok=false.
func (s *Server) tableFromUpload(c *gin.Context) (*table.Table, bool) {
	header, err := c.FormFile("file")
	if err != nil {
		logExtra(c, "error", "missing_file")
		c.JSON(http.StatusBadRequest, gin.H{"error": "expected a multipart upload with a 'file' field"})
		return nil, false
	}
	logExtra(c, "filename", header.Filename)

	if ct := header.Header.Get("Content-Type"); !allowedContentTypes[ct] {
		logExtra(c, "error", "invalid_content_type")
		c.JSON(http.StatusBadRequest, gin.H{"error": "expected a CSV file (content-type text/csv)"})
		return nil, false
	}

	file, err := header.Open()
	if err != nil {
		logExtra(c, "error", "unreadable_upload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read upload: " + err.Error()})
		return nil, false
	}
	defer file.Close()

	tbl, err := s.loader.Parse(file)
	if err != nil {
		logExtra(c, "error", "parse_error")
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not parse CSV: " + err.Error()})
		return nil, false
	}
	if tbl.NumRows() == 0 || tbl.NumCols() == 0 {
		logExtra(c, "error", "empty_dataset")
		c.JSON(http.StatusBadRequest, gin.H{"error": "CSV file contains no data"})
		return nil, false
	}
	return tbl, true
}

func latencyMS(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
