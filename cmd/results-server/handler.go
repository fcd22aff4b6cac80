package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"resultfetcher/internal/results"
	"strings"
)

const MAX_BODY_BYTES = 1 << 20

type fetchRequest struct {
	RollNumbers []string `json:"roll_numbers"`
}

type fetchResponse struct {
	Records []results.Record `json:"records"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJson(w http.ResponseWriter, status int, value any) {
	w.Header().Set("content-type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(value)
	if err != nil {
		slog.Warn("write response", "err", err)
	}
}

// NewHandler serves:
//
//	POST /v1/results {"roll_numbers": [...]} -> {"records": [...]}
//	GET  /healthz
func NewHandler(fetcher *results.Fetcher) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	mux.HandleFunc("POST /v1/results", func(w http.ResponseWriter, r *http.Request) {
		var req fetchRequest
		decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, MAX_BODY_BYTES))
		err := decoder.Decode(&req)
		if err != nil {
			writeJson(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
			return
		}

		rollNumbers := make([]string, 0, len(req.RollNumbers))
		for _, rollNumber := range req.RollNumbers {
			rollNumber = strings.TrimSpace(rollNumber)
			if rollNumber == "" {
				continue
			}
			rollNumbers = append(rollNumbers, rollNumber)
		}
		if len(rollNumbers) == 0 {
			writeJson(w, http.StatusBadRequest, errorResponse{Error: "no roll numbers given"})
			return
		}

		records := fetcher.FetchBatch(r.Context(), rollNumbers)
		writeJson(w, http.StatusOK, fetchResponse{Records: records})
	})

	return mux
}
