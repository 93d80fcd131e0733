// Package v1 handles the simulator gRPC service interface
package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/arychagov/w40k/internal/entities/rules"
	"github.com/arychagov/w40k/internal/errors"
	"github.com/arychagov/w40k/internal/orchestrators/simulation"
	"github.com/arychagov/w40k/internal/profiles"
	"github.com/arychagov/w40k/internal/repositories/summaries"
	"github.com/arychagov/w40k/internal/stats"
)

// HandlerConfig holds dependencies for the handler
type HandlerConfig struct {
	SimulationService simulation.Service
	// SummaryRepository keeps simulated summaries for GetSummary and
	// ListSummaries; optional
	SummaryRepository summaries.Repository
	// Ordering is applied to attackers built from request fields
	Ordering rules.Ordering
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c.SimulationService == nil {
		return errors.InvalidArgument("simulation service is required")
	}
	return nil
}

// Handler implements the simulator gRPC service
type Handler struct {
	simulationService simulation.Service
	summaryRepository summaries.Repository
	ordering          rules.Ordering
}

// NewHandler creates a new handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{
		simulationService: cfg.SimulationService,
		summaryRepository: cfg.SummaryRepository,
		ordering:          cfg.Ordering,
	}, nil
}

// Simulate runs one batch for the attacker and defender in the request.
// Missing fields keep their defaults; numbers may be sent as strings or
// numbers.
func (h *Handler) Simulate(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, errors.ToGRPCError(errors.InvalidArgument("request is required"))
	}

	attackerFields := profiles.DefaultAttackerFields()
	if err := decodeFields("attacker", req.GetFields()["attacker"], &attackerFields); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	defenderFields := profiles.DefaultDefenderFields()
	if err := decodeFields("defender", req.GetFields()["defender"], &defenderFields); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	attacker, err := profiles.BuildAttacker(attackerFields, profiles.WithOrdering(h.ordering))
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	defender, err := profiles.BuildDefender(defenderFields)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	input := &simulation.SimulateInput{
		Attacker: attacker,
		Defender: defender,
	}
	if v, ok := req.GetFields()["trials"]; ok {
		trials, err := intField("trials", v)
		if err != nil {
			return nil, errors.ToGRPCError(err)
		}
		input.Trials = trials
	}
	if v, ok := req.GetFields()["seed"]; ok {
		seed, err := seedField(v)
		if err != nil {
			return nil, errors.ToGRPCError(err)
		}
		input.Seed = &seed
	}

	output, err := h.simulationService.Simulate(ctx, input)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	if h.summaryRepository != nil {
		// the result is still returned when it cannot be kept
		if _, err := h.summaryRepository.Save(ctx, summaries.SaveInput{Summary: output.Summary}); err != nil {
			slog.Warn("Failed to store summary", "batch_id", output.Summary.BatchID, "error", err)
		}
	}

	fields := summaryFields(output.Summary)
	fields["seed"] = strconv.FormatUint(output.Seed, 10)
	return encode(fields)
}

// GetSummary returns a stored summary by batch_id
func (h *Handler) GetSummary(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if h.summaryRepository == nil {
		return nil, errors.ToGRPCError(errors.FailedPrecondition("summaries are not stored"))
	}

	batchID := req.GetFields()["batch_id"].GetStringValue()
	if batchID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("batch_id is required"))
	}

	output, err := h.summaryRepository.Get(ctx, summaries.GetInput{BatchID: batchID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return encode(summaryFields(output.Summary))
}

// ListSummaries returns the most recent stored summaries, newest first
func (h *Handler) ListSummaries(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if h.summaryRepository == nil {
		return nil, errors.ToGRPCError(errors.FailedPrecondition("summaries are not stored"))
	}

	input := summaries.ListInput{}
	if v, ok := req.GetFields()["limit"]; ok {
		limit, err := intField("limit", v)
		if err != nil {
			return nil, errors.ToGRPCError(err)
		}
		input.Limit = limit
	}

	output, err := h.summaryRepository.List(ctx, input)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	items := make([]interface{}, 0, len(output.Summaries))
	for _, summary := range output.Summaries {
		items = append(items, summaryFields(summary))
	}
	return encode(map[string]interface{}{"summaries": items})
}

func summaryFields(summary stats.Summary) map[string]interface{} {
	return map[string]interface{}{
		"batch_id":     summary.BatchID,
		"mean":         summary.Mean,
		"p50":          summary.P50,
		"p95":          summary.P95,
		"trials":       summary.Trials,
		"summary":      summary.String(),
		"completed_at": summary.CompletedAt.UTC().Format(time.RFC3339Nano),
	}
}

func encode(fields map[string]interface{}) (*structpb.Struct, error) {
	resp, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, errors.ToGRPCError(errors.Wrap(err, "failed to encode response"))
	}
	return resp, nil
}

// decodeFields overlays a struct value onto dst. Numbers become strings so
// that {"attacks": 3} and {"attacks": "3"} mean the same thing.
func decodeFields(name string, v *structpb.Value, dst interface{}) error {
	if v == nil {
		return nil
	}
	if _, ok := v.GetKind().(*structpb.Value_StructValue); !ok {
		return errors.InvalidArgumentf("%s must be an object", name)
	}

	data, err := json.Marshal(stringifyNumbers(v.AsInterface()))
	if err != nil {
		return errors.Wrap(err, "failed to encode fields")
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.InvalidArgumentf("%s: %v", name, err)
	}
	return nil
}

func stringifyNumbers(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		for k, item := range t {
			t[k] = stringifyNumbers(item)
		}
		return t
	case []interface{}:
		for i, item := range t {
			t[i] = stringifyNumbers(item)
		}
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return v
	}
}

func intField(name string, v *structpb.Value) (int, error) {
	switch k := v.GetKind().(type) {
	case *structpb.Value_NumberValue:
		n := k.NumberValue
		if n != float64(int(n)) {
			return 0, errors.InvalidArgumentf("%s must be an integer", name)
		}
		return int(n), nil
	case *structpb.Value_StringValue:
		n, err := strconv.Atoi(k.StringValue)
		if err != nil {
			return 0, errors.InvalidArgumentf("%s must be an integer", name)
		}
		return n, nil
	default:
		return 0, errors.InvalidArgumentf("%s must be an integer", name)
	}
}

// seedField accepts a string so seeds above 2^53 survive the trip through
// a JSON number
func seedField(v *structpb.Value) (uint64, error) {
	switch k := v.GetKind().(type) {
	case *structpb.Value_NumberValue:
		n := k.NumberValue
		if n < 0 || n != float64(uint64(n)) {
			return 0, errors.InvalidArgument("seed must be a non-negative integer")
		}
		return uint64(n), nil
	case *structpb.Value_StringValue:
		n, err := strconv.ParseUint(k.StringValue, 10, 64)
		if err != nil {
			return 0, errors.InvalidArgument("seed must be a non-negative integer")
		}
		return n, nil
	default:
		return 0, errors.InvalidArgument("seed must be a non-negative integer")
	}
}
