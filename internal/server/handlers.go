package server

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"strconv"
	"time"

	"github.com/agbru/fibsci/internal/fibonacci"
	"github.com/agbru/fibsci/internal/notation"
	"github.com/agbru/fibsci/internal/sysmon"
)

// handleHealth responds to health check requests.
// It returns a 200 OK status with a JSON payload carrying the service status
// and a system resource snapshot.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	stats := sysmon.Sample()
	response := map[string]any{
		"status":      "healthy",
		"timestamp":   time.Now().Unix(),
		"cpu_percent": stats.CPUPercent,
		"mem_percent": stats.MemPercent,
	}

	s.writeJSONResponse(w, http.StatusOK, response)
}

// handleAlgorithms returns the list of available Fibonacci calculation algorithms.
// It queries the internal registry and returns the names as a JSON array.
func (s *Server) handleAlgorithms(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	response := map[string]any{
		"algorithms": s.factory.List(),
	}

	s.writeJSONResponse(w, http.StatusOK, response)
}

// handleCalculate processes requests to calculate Fibonacci numbers.
// It parses the query parameters 'n' (the index), 'algo' (the algorithm) and
// the optional 'digits' (last K decimal digits only), executes the calculation
// and returns the rendered result in JSON format.
func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	params, err := parseCalculateParams(r)
	if err != nil {
		if parseErr, ok := err.(CalculateParseError); ok {
			s.writeErrorResponse(w, parseErr.StatusCode, parseErr.Message)
		} else {
			s.writeErrorResponse(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	if params.n > s.securityConfig.MaxNValue {
		s.writeErrorResponse(w, http.StatusBadRequest,
			fmt.Sprintf("Value of 'n' exceeds maximum allowed (%d). This limit prevents resource exhaustion.", s.securityConfig.MaxNValue))
		return
	}

	if params.lastDigits > 0 {
		s.serveLastDigits(w, params)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeouts.RequestTimeout)
	defer cancel()

	calc, err := s.factory.Get(params.algo)
	if err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	start := time.Now()
	result, err := calc.Calculate(ctx, nil, 0, params.n, s.cfg.ToCalculationOptions())
	duration := time.Since(start)

	if err != nil {
		s.metrics.CountCalculationError(params.algo)
	} else {
		s.metrics.ObserveCalculation(params.algo, duration.Seconds())
	}

	s.writeJSONResponse(w, http.StatusOK, s.buildCalculateResponse(params, result, duration, err))
}

// serveLastDigits answers a calculation restricted to the trailing decimal
// digits, computed with the modular fast doubling variant.
func (s *Server) serveLastDigits(w http.ResponseWriter, params calculateParams) {
	modulus := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(params.lastDigits)), nil)

	start := time.Now()
	result, err := fibonacci.FastDoublingMod(params.n, modulus)
	duration := time.Since(start)

	resp := Response{
		N:         params.n,
		Duration:  duration.String(),
		Algorithm: "doubling-mod",
	}
	if err != nil {
		s.metrics.CountCalculationError(resp.Algorithm)
		resp.Error = err.Error()
	} else {
		s.metrics.ObserveCalculation(resp.Algorithm, duration.Seconds())
		resp.LastDigits = result.String()
	}

	s.writeJSONResponse(w, http.StatusOK, resp)
}

// calculateParams holds the parsed query parameters of a /calculate request.
type calculateParams struct {
	n          uint64
	algo       string
	lastDigits int
}

// parseCalculateParams extracts and validates the calculation parameters from
// the request.
//
// Parameters:
//   - r: The HTTP request containing query parameters.
//
// Returns:
//   - calculateParams: The parsed parameters ('algo' defaults to "doubling").
//   - error: A CalculateParseError if validation fails, nil otherwise.
func parseCalculateParams(r *http.Request) (calculateParams, error) {
	var params calculateParams

	nStr := r.URL.Query().Get("n")
	if nStr == "" {
		return params, CalculateParseError{
			Message:    "Missing 'n' parameter",
			StatusCode: http.StatusBadRequest,
		}
	}

	n, parseErr := strconv.ParseUint(nStr, 10, 64)
	if parseErr != nil {
		// strconv.ParseUint rejects a negative sign, enforcing non-negative
		// inputs as required for security.
		return params, CalculateParseError{
			Message:    "Invalid 'n' parameter: must be a non-negative integer",
			StatusCode: http.StatusBadRequest,
		}
	}
	params.n = n

	params.algo = r.URL.Query().Get("algo")
	if params.algo == "" {
		params.algo = "doubling"
	}

	if digitsStr := r.URL.Query().Get("digits"); digitsStr != "" {
		digits, err := strconv.Atoi(digitsStr)
		if err != nil || digits < 0 {
			return params, CalculateParseError{
				Message:    "Invalid 'digits' parameter: must be a non-negative integer",
				StatusCode: http.StatusBadRequest,
			}
		}
		params.lastDigits = digits
	}

	return params, nil
}

// buildCalculateResponse constructs the response struct for a calculation.
// The result value is rendered with the server's notation renderer: exact
// decimal up to the scientific threshold, scientific notation beyond.
func (s *Server) buildCalculateResponse(params calculateParams, result *big.Int, duration time.Duration, err error) Response {
	resp := Response{
		N:         params.n,
		Duration:  duration.String(),
		Algorithm: params.algo,
	}

	if err != nil {
		resp.Error = err.Error()
	} else {
		resp.Result = s.renderer.Render(result)
		resp.Digits = notation.DigitCount(result)
	}

	return resp
}

// writeJSONResponse writes a JSON response with the correct content type.
//
// Parameters:
//   - w: The HTTP response writer.
//   - statusCode: The HTTP status code to write.
//   - data: The data to be encoded as JSON.
func (s *Server) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("encoding JSON response", err)
	}
}

// writeErrorResponse writes a standardized error response.
//
// Parameters:
//   - w: The HTTP response writer.
//   - statusCode: The HTTP status code to write.
//   - message: The error message to be included in the response body.
func (s *Server) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	errResp := ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	s.writeJSONResponse(w, statusCode, errResp)
}
