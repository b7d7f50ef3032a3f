package http

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"budgetapp/internal/core"
)

// flash is a one-shot notice carried through redirect query parameters.
type flash struct {
	Level string // "ok" or "err"
	Text  string
}

// flashFromQuery reads the status/message pair, if present.
func flashFromQuery(r *http.Request) *flash {
	q := r.URL.Query()
	status := q.Get("status")
	message := q.Get("message")
	if status == "" || message == "" {
		return nil
	}
	level := "err"
	if status == "ok" {
		level = "ok"
	}
	return &flash{Level: level, Text: message}
}

func redirectOK(w http.ResponseWriter, r *http.Request, message string) {
	redirectFlash(w, r, "ok", message)
}

func redirectErr(w http.ResponseWriter, r *http.Request, message string) {
	redirectFlash(w, r, "err", message)
}

func redirectFlash(w http.ResponseWriter, r *http.Request, status, message string) {
	target := "/?status=" + status + "&message=" + url.QueryEscape(message)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// errorMessage maps domain errors to the human-readable notice shown after a
// redirect.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, core.ErrDuplicateName):
		return "A project with that name already exists"
	case errors.Is(err, core.ErrInvalidAmount):
		return "Amount must be a non-negative number"
	case errors.Is(err, core.ErrMissingField):
		return err.Error()
	case errors.Is(err, core.ErrProjectNotFound):
		return "Project not found"
	case errors.Is(err, core.ErrInterchange):
		return err.Error()
	default:
		return "Something went wrong"
	}
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

func today() string {
	return time.Now().Format("2006-01-02")
}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}
