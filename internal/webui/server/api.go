package server

import (
	"context"
	"encoding/json"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"commas/internal/completion"
	"commas/internal/shellint"
	appver "commas/internal/version"
)

func (s *Server) mountAPIGin(r *gin.Engine) {
	api := r.Group("/api")
	api.GET("/health", gin.WrapF(func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}))
	api.GET("/version", gin.WrapF(func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"version": appver.AppVersion})
	}))
	api.GET("/settings", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.settings())
	})
	api.GET("/completions", s.completionsHandler)
	api.POST("/quickfix", gin.WrapF(quickfixHandler))

	// Terminal (WebSocket PTY)
	api.GET("/term/ws", s.terminalWSHandler)
}

// completionsHandler ranks candidates for ?input= in ?cwd=.
func (s *Server) completionsHandler(c *gin.Context) {
	input := c.Query("input")
	cwd := c.Query("cwd")
	if cwd == "" {
		cwd, _ = os.Getwd()
	}
	list := []completion.Candidate{}
	if s.Provider != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), s.settings().Timeout())
		defer cancel()
		res, _ := completion.Safe(s.Provider).Complete(ctx, input, cwd)
		if ranked := completion.Rank(res); len(ranked) > 0 {
			list = ranked
		}
	}
	c.JSON(http.StatusOK, gin.H{"input": input, "candidates": list})
}

type quickfixRequest struct {
	Command string `json:"command"`
	Output  string `json:"output"`
}

func quickfixHandler(w http.ResponseWriter, r *http.Request) {
	var in quickfixRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, errJSON(err))
		return
	}
	actions := shellint.QuickFixActions(in.Command, in.Output)
	if actions == nil {
		actions = []shellint.QuickFixAction{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"actions": actions})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("content-type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

func errJSON(err error) map[string]string { return map[string]string{"error": err.Error()} }
