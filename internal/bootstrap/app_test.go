package bootstrap_test

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"math"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"resume-screener/internal/bootstrap"
	"resume-screener/internal/shared/config"
)

const jobText = "We need Python and Machine Learning experience. SQL is a plus."

func testConfig(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()
	jobPath := filepath.Join(dir, "job.txt")
	if err := os.WriteFile(jobPath, []byte(jobText), 0o644); err != nil {
		t.Fatalf("write job: %v", err)
	}
	return config.Config{
		Port:               "0",
		Env:                "dev",
		CORSAllowOrigin:    []string{"http://localhost:5173"},
		ObjectStoreType:    "local",
		LocalStoreDir:      filepath.Join(dir, "store"),
		UploadDir:          "uploads",
		JobDescriptionPath: jobPath,
		SimilarityStrategy: "tfidf",
		RejectionThreshold: 30,
		DefaultExperience:  4,
		ModelKey:           "models/resume_model.json",
		ModelAutoTrain:     true,
		ScreenTimeout:      10 * time.Second,
		RateLimitRPS:       100,
		RateLimitBurst:     100,
	}
}

func docxBytes(t *testing.T, paragraphs ...string) []byte {
	t.Helper()
	var body strings.Builder
	for _, p := range paragraphs {
		body.WriteString("<w:p><w:r><w:t>" + p + "</w:t></w:r></w:p>")
	}
	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	entries := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"></Types>`,
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
		"word/document.xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
			body.String() + `</w:body></w:document>`,
	}
	for name, content := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip entry: %v", err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("zip write: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	return buf.Bytes()
}

type uploadResponse struct {
	ID               string   `json:"id"`
	MatchScore       float64  `json:"match_score"`
	SkillMatchScore  float64  `json:"skill_match_score"`
	MatchedSkills    []string `json:"matched_skills"`
	Prediction       string   `json:"prediction"`
	FileSavedAt      string   `json:"file_saved_at"`
	ExperienceYears  float64  `json:"experience_years"`
	ExperienceSource string   `json:"experience_source"`
	Scorer           string   `json:"scorer"`
	Profile          struct {
		Education       []string `json:"education"`
		ExperienceYears int      `json:"experience_years"`
	} `json:"profile"`
}

func upload(t *testing.T, router http.Handler, path, fileName string, content []byte, years string) *httptest.ResponseRecorder {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	fw, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if years != "" {
		if err := writer.WriteField("experience_years", years); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestUploadResumeEndToEnd(t *testing.T) {
	gin.SetMode(gin.TestMode)
	app, err := bootstrap.Build(testConfig(t))
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	t.Cleanup(func() { _ = app.Close() })

	content := docxBytes(t,
		"Jane Doe",
		"Skills: Python, Machine Learning, NLP, Deep Learning",
		"6 years of experience",
		"B.Sc Computer Science",
	)
	resp := upload(t, app.Router, "/upload_resume/", "Jane Doe CV.docx", content, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var got uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(got.MatchedSkills, []string{"Python", "Machine Learning"}) {
		t.Fatalf("unexpected matched skills: %#v", got.MatchedSkills)
	}
	if math.Abs(got.SkillMatchScore-66.67) > 0.01 {
		t.Fatalf("expected skill score ~66.67, got %v", got.SkillMatchScore)
	}
	// Lexical overlap with the job text is low, so the threshold rule applies.
	if got.MatchScore >= 30 || got.Prediction != "Not Suitable" {
		t.Fatalf("expected low score rejection, got %v %q", got.MatchScore, got.Prediction)
	}
	if got.ExperienceYears != 6 || got.ExperienceSource != "resume" {
		t.Fatalf("unexpected experience: %v (%s)", got.ExperienceYears, got.ExperienceSource)
	}
	if !reflect.DeepEqual(got.Profile.Education, []string{"B.Sc Computer Science"}) {
		t.Fatalf("unexpected education: %#v", got.Profile.Education)
	}
	if !strings.HasSuffix(got.FileSavedAt, got.ID+"_JaneDoeCV.docx") {
		t.Fatalf("unexpected saved path %s", got.FileSavedAt)
	}
	if _, err := os.Stat(got.FileSavedAt); err != nil {
		t.Fatalf("uploaded file missing: %v", err)
	}
}

func TestUploadSuitableCandidate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	app, err := bootstrap.Build(testConfig(t))
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	t.Cleanup(func() { _ = app.Close() })

	resp := upload(t, app.Router, "/api/v1/screenings", "cv.docx", docxBytes(t, jobText), "4")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var got uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if math.Abs(got.MatchScore-100) > 1e-6 {
		t.Fatalf("expected identical text to score 100, got %v", got.MatchScore)
	}
	if got.Prediction != "Suitable" || got.ExperienceSource != "request" {
		t.Fatalf("unexpected result: %+v", got)
	}
	if got.SkillMatchScore != 100 || got.Scorer != "tfidf" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestUploadRejectsUnsupportedFormat(t *testing.T) {
	gin.SetMode(gin.TestMode)
	app, err := bootstrap.Build(testConfig(t))
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	t.Cleanup(func() { _ = app.Close() })

	resp := upload(t, app.Router, "/upload_resume/", "notes.txt", []byte("Python"), "")
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestModelUnavailableWithoutAutoTrain(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig(t)
	cfg.ModelAutoTrain = false
	app, err := bootstrap.Build(cfg)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	t.Cleanup(func() { _ = app.Close() })

	resp := upload(t, app.Router, "/upload_resume/", "cv.docx", docxBytes(t, jobText), "")
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d: %s", resp.Code, resp.Body.String())
	}

	ready := httptest.NewRecorder()
	app.Router.ServeHTTP(ready, httptest.NewRequest(http.MethodGet, "/api/v1/ready", nil))
	if ready.Code != http.StatusServiceUnavailable {
		t.Fatalf("/api/v1/ready: expected 503, got %d", ready.Code)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	app, err := bootstrap.Build(testConfig(t))
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	t.Cleanup(func() { _ = app.Close() })

	for _, path := range []string{"/health", "/api/v1/health"} {
		resp := httptest.NewRecorder()
		app.Router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, path, nil))
		if resp.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, resp.Code)
		}
		var payload map[string]string
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if payload["status"] != "ok" {
			t.Fatalf("%s: unexpected payload %v", path, payload)
		}
	}

	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("/ready: expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	resp = httptest.NewRecorder()
	app.Router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), "screener_screenings_started_total") {
		t.Fatalf("metrics endpoint missing screening counters")
	}
}

func TestBuildRejectsEmbeddingWithoutKey(t *testing.T) {
	cfg := testConfig(t)
	cfg.SimilarityStrategy = "embedding"
	if _, err := bootstrap.Build(cfg); err == nil {
		t.Fatalf("expected error without embedding api key")
	}
}
