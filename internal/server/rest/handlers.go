package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/studymate/internal/common"
	"github.com/gin-gonic/gin"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type explainRequest struct {
	Subject  string  `json:"subject"`
	Topic    string  `json:"topic"`
	Level    *string `json:"level"`
	Username string  `json:"username"`
}

type summarizeRequest struct {
	Notes    string `json:"notes"`
	Username string `json:"username"`
}

type topicRequest struct {
	Topic    string  `json:"topic"`
	Count    lenient `json:"count"`
	Username string  `json:"username"`
}

type historyRequest struct {
	Username string `json:"username"`
}

// lenient is an int that also accepts a numeric string. Anything else reads
// as zero.
type lenient int

func (n *lenient) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return nil
	}
	switch x := v.(type) {
	case float64:
		*n = lenient(x)
	case string:
		if i, err := strconv.Atoi(x); err == nil {
			*n = lenient(i)
		}
	}
	return nil
}

// bind reads the JSON body into dst. A missing or malformed body leaves dst
// zero, so it fails the handler's own required-field checks.
func bind(c *gin.Context, dst any) {
	raw, err := c.GetRawData()
	if err != nil || len(raw) == 0 {
		return
	}
	_ = json.Unmarshal(raw, dst)
}

func (s *HTTPServer) login(c *gin.Context) {
	var req credentialsRequest
	bind(c, &req)

	if req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Username and password required"})
		return
	}

	if !s.accounts.Authenticate(c.Request.Context(), req.Username, req.Password) {
		s.log(c).Info(c.Request.Context(), "login rejected", "username", req.Username)
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid username or password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "username": req.Username})
}

func (s *HTTPServer) signup(c *gin.Context) {
	var req credentialsRequest
	bind(c, &req)

	if req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Username and password required"})
		return
	}

	if err := s.accounts.Register(c.Request.Context(), req.Username, req.Password); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Username already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Account created successfully. Please login."})
}

func (s *HTTPServer) explain(c *gin.Context) {
	var req explainRequest
	bind(c, &req)

	text, err := s.study.Explain(c.Request.Context(), req.Username, req.Subject, req.Topic, req.Level)
	if err != nil {
		s.fail(c, err, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"explanation": text})
}

func (s *HTTPServer) summarize(c *gin.Context) {
	var req summarizeRequest
	bind(c, &req)

	text, err := s.study.Summarize(c.Request.Context(), req.Username, req.Notes)
	if err != nil {
		s.fail(c, err, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": text})
}

func (s *HTTPServer) quiz(c *gin.Context) {
	var req topicRequest
	bind(c, &req)

	quiz, err := s.study.Quiz(c.Request.Context(), req.Username, req.Topic, int(req.Count))
	if err != nil {
		s.fail(c, err, "Failed to generate quiz. ")
		return
	}
	c.JSON(http.StatusOK, gin.H{"quiz": quiz})
}

func (s *HTTPServer) flashcards(c *gin.Context) {
	var req topicRequest
	bind(c, &req)

	cards, err := s.study.Flashcards(c.Request.Context(), req.Username, req.Topic)
	if err != nil {
		s.fail(c, err, "Failed to generate flashcards. ")
		return
	}
	c.JSON(http.StatusOK, gin.H{"flashcards": cards})
}

func (s *HTTPServer) history(c *gin.Context) {
	var req historyRequest
	bind(c, &req)

	if req.Username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username required"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": s.accounts.ReadHistory(c.Request.Context(), req.Username)})
}

// fail maps a study error to its status: validation errors are the client's
// fault, everything else is a 500 carrying the underlying text.
func (s *HTTPServer) fail(c *gin.Context, err error, prefix string) {
	if errors.Is(err, common.ErrorValidation) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": prefix + err.Error()})
}
