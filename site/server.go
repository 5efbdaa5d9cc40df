// Package site serves the puzzle bank over HTTP: the latest puzzle as a page,
// the whole bank as an iCalendar feed, and the raw bank file.
package site

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"html/template"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"miniscraper/bank"
	"miniscraper/calendar"
	"miniscraper/puzzle"
)

const shutdownWait = 5 * time.Second

var pageTemplate = template.Must(template.New("puzzle").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>The Mini Crossword {{.Date}}</title>
<style>
table.grid { border-collapse: collapse; }
table.grid td { width: 3em; height: 3em; border: 1px solid #000; position: relative; text-align: center; font-size: 1.4em; }
table.grid td.block { background: #000; }
table.grid td sup { position: absolute; top: 2px; left: 3px; font-size: 0.5em; }
</style>
</head>
<body>
<h1>The Mini Crossword</h1>
<p>{{.Date}}</p>
<table class="grid">
{{- range .Rows}}
<tr>{{range .}}{{if .Available}}<td>{{if .HasLabel}}<sup>{{.Label}}</sup>{{end}}{{.Letter}}</td>{{else}}<td class="block"></td>{{end}}{{end}}</tr>
{{- end}}
</table>
<h2>Across</h2>
<ol>{{range .Across}}<li value="{{.Number}}">{{.Text}}</li>{{end}}</ol>
<h2>Down</h2>
<ol>{{range .Down}}<li value="{{.Number}}">{{.Text}}</li>{{end}}</ol>
<p><a href="/puzzlebank.ics">Calendar feed</a> · <a href="/puzzlebank.txt">Puzzle bank</a></p>
</body>
</html>
`))

type pageData struct {
	Date   string
	Rows   [][]puzzle.Cell
	Across []puzzle.Clue
	Down   []puzzle.Clue
}

// Server reads the bank on every request, so puzzles appended by a running
// scrape show up without a restart.
type Server struct {
	BankPath string
	Rows     int
	Cols     int
	Log      *zap.Logger
}

func New(bankPath string, rows, cols int, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{BankPath: bankPath, Rows: rows, Cols: cols, Log: log}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.puzzleHandler)
	mux.HandleFunc("GET /puzzlebank.ics", s.calendarHandler)
	mux.HandleFunc("GET /puzzlebank.txt", s.bankHandler)
	return mux
}

func (s *Server) puzzleHandler(w http.ResponseWriter, r *http.Request) {
	rec, err := bank.ReadLast(s.BankPath, s.Rows, s.Cols)
	if errors.Is(err, bank.ErrEmpty) || errors.Is(err, os.ErrNotExist) {
		http.Error(w, "No puzzles stored yet", http.StatusNotFound)
		return
	}
	if err != nil {
		s.Log.Error("Error reading puzzle bank", zap.String("bank", s.BankPath), zap.Error(err))
		http.Error(w, "Error reading puzzle bank", http.StatusInternalServerError)
		return
	}

	data := pageData{
		Date:   rec.Date.Format("Monday, January 02, 2006"),
		Rows:   rec.Grid.Entries,
		Across: rec.Across,
		Down:   rec.Down,
	}
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		s.Log.Error("Error rendering puzzle page", zap.Error(err))
		http.Error(w, "Error rendering puzzle", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *Server) calendarHandler(w http.ResponseWriter, r *http.Request) {
	records, err := bank.ReadAll(s.BankPath, s.Rows, s.Cols)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		s.Log.Error("Error reading puzzle bank", zap.String("bank", s.BankPath), zap.Error(err))
		http.Error(w, "Error reading puzzle bank", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := calendar.Export(&buf, records, time.Now().UTC()); err != nil {
		s.Log.Error("Error exporting calendar", zap.Error(err))
		http.Error(w, "Error exporting calendar", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *Server) bankHandler(w http.ResponseWriter, r *http.Request) {
	if _, err := os.Stat(s.BankPath); err != nil {
		http.Error(w, "No puzzles stored yet", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	http.ServeFile(w, r, s.BankPath)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
// TLS is used when both certFile and keyFile are set.
func (s *Server) ListenAndServe(ctx context.Context, addr, certFile, keyFile string) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		TLSConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	}

	errCh := make(chan error, 1)
	go func() {
		if certFile != "" && keyFile != "" {
			s.Log.Info("Starting server", zap.String("url", "https://"+addr))
			errCh <- server.ListenAndServeTLS(certFile, keyFile)
			return
		}
		s.Log.Info("Starting server", zap.String("url", "http://"+addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownWait)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}
