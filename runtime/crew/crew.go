package crew

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vmakoed/wordpan/runtime/agent/model"
	"github.com/vmakoed/wordpan/runtime/agent/telemetry"
)

type (
	// Process selects the order in which a crew runs its tasks.
	Process string

	// Options configures a Crew.
	Options struct {
		// Name identifies the crew in logs, spans and metrics.
		Name string
		// Agents lists the agents of the crew. Every task agent must be listed.
		Agents []*Agent
		// Tasks lists the tasks in execution order. At least one is required.
		Tasks []*Task
		// Process defaults to ProcessSequential.
		Process Process
		// Logger, Metrics and Tracer default to no-op implementations.
		Logger  telemetry.Logger
		Metrics telemetry.Metrics
		Tracer  telemetry.Tracer
	}

	// Crew is a named collection of agents and tasks executed under a process.
	// A Crew is immutable and safe for concurrent Kickoff calls.
	Crew struct {
		name    string
		agents  []*Agent
		tasks   []*Task
		process Process
		logger  telemetry.Logger
		metrics telemetry.Metrics
		tracer  telemetry.Tracer
	}

	// Output is the result of a kickoff.
	Output struct {
		// RunID uniquely identifies the kickoff.
		RunID string
		// Raw is the raw text of the final task.
		Raw string
		// JSON is the validated document of the final task, if any.
		JSON map[string]any
		// Tasks lists the output of every task in execution order.
		Tasks []*TaskOutput
		// Usage aggregates the token usage of all tasks.
		Usage model.TokenUsage
	}
)

// ProcessSequential runs tasks one after the other in declaration order,
// passing the output of earlier tasks as context to later ones.
const ProcessSequential Process = "sequential"

// New validates opts and returns a crew.
func New(opts Options) (*Crew, error) {
	if opts.Name == "" {
		return nil, errors.New("crew: name is required")
	}
	if len(opts.Tasks) == 0 {
		return nil, fmt.Errorf("crew %q: at least one task is required", opts.Name)
	}
	process := opts.Process
	if process == "" {
		process = ProcessSequential
	}
	if process != ProcessSequential {
		return nil, fmt.Errorf("crew %q: unsupported process %q", opts.Name, process)
	}
	agents := make(map[*Agent]struct{}, len(opts.Agents))
	for _, a := range opts.Agents {
		if a == nil {
			return nil, fmt.Errorf("crew %q: nil agent", opts.Name)
		}
		agents[a] = struct{}{}
	}
	for _, t := range opts.Tasks {
		if t == nil {
			return nil, fmt.Errorf("crew %q: nil task", opts.Name)
		}
		if _, ok := agents[t.Agent]; !ok {
			return nil, fmt.Errorf("crew %q: task %q agent is not a member of the crew", opts.Name, t.Name)
		}
	}
	c := &Crew{
		name:    opts.Name,
		agents:  append([]*Agent(nil), opts.Agents...),
		tasks:   append([]*Task(nil), opts.Tasks...),
		process: process,
		logger:  opts.Logger,
		metrics: opts.Metrics,
		tracer:  opts.Tracer,
	}
	if c.logger == nil {
		c.logger = telemetry.NewNoopLogger()
	}
	if c.metrics == nil {
		c.metrics = telemetry.NewNoopMetrics()
	}
	if c.tracer == nil {
		c.tracer = telemetry.NewNoopTracer()
	}
	return c, nil
}

// Name returns the crew name.
func (c *Crew) Name() string { return c.name }

// Agents returns the crew agents.
func (c *Crew) Agents() []*Agent { return append([]*Agent(nil), c.agents...) }

// Kickoff runs the crew tasks with the given template inputs and returns the
// final output. Every placeholder referenced by an agent or task must be
// present in inputs. Model and validation errors abort the kickoff and are
// returned as is.
func (c *Crew) Kickoff(ctx context.Context, inputs map[string]string) (*Output, error) {
	runID := uuid.NewString()
	ctx, span := c.tracer.Start(ctx, "crew.kickoff", trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()
	span.AddEvent("kickoff", "crew", c.name, "run_id", runID, "tasks", len(c.tasks))

	missing := make(map[string]struct{})
	rendered := make([]renderedTask, len(c.tasks))
	for i, t := range c.tasks {
		rendered[i] = renderTask(t, inputs, missing)
	}
	if err := missingInputError(missing); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("crew %q: %w", c.name, err)
	}

	start := time.Now()
	c.logger.Info(ctx, "crew kickoff", "crew", c.name, "run_id", runID, "process", string(c.process))
	out := &Output{RunID: runID, Tasks: make([]*TaskOutput, 0, len(rendered))}
	for _, rt := range rendered {
		res, err := c.runTask(ctx, runID, rt, out.Tasks)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			c.metrics.IncCounter("crew.kickoff.errors", 1, "crew", c.name, "task", rt.task.Name)
			return nil, err
		}
		out.Tasks = append(out.Tasks, res)
		out.Usage = out.Usage.Add(res.Usage)
	}
	final := out.Tasks[len(out.Tasks)-1]
	out.Raw = final.Raw
	out.JSON = final.JSON

	c.metrics.RecordTimer("crew.kickoff.duration", time.Since(start), "crew", c.name)
	c.logger.Info(ctx, "crew completed", "crew", c.name, "run_id", runID, "total_tokens", out.Usage.TotalTokens, "duration_ms", time.Since(start).Milliseconds())
	span.SetStatus(codes.Ok, "")
	return out, nil
}

func (c *Crew) runTask(ctx context.Context, runID string, rt renderedTask, prior []*TaskOutput) (*TaskOutput, error) {
	t := rt.task
	ctx, span := c.tracer.Start(ctx, "crew.task")
	defer span.End()
	span.AddEvent("task", "task", t.Name, "agent", t.Agent.Name)

	start := time.Now()
	c.logger.Debug(ctx, "task started", "run_id", runID, "task", t.Name, "agent", t.Agent.Name)
	resp, err := t.Agent.LLM.Complete(ctx, rt.request(prior))
	c.metrics.RecordTimer("crew.task.duration", time.Since(start), "crew", c.name, "task", t.Name)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "model call failed")
		c.logger.Error(ctx, "task model call failed", "run_id", runID, "task", t.Name, "err", err)
		return nil, fmt.Errorf("crew %q: task %q: %w", c.name, t.Name, err)
	}
	res := &TaskOutput{Task: t.Name, Agent: t.Agent.Name, Raw: resp.Text(), Usage: resp.Usage}
	if t.Output != nil {
		doc, err := t.Output.Validate(res.Raw)
		if err != nil {
			var ve *ValidationError
			if errors.As(err, &ve) {
				ve.Task = t.Name
			}
			span.RecordError(err)
			span.SetStatus(codes.Error, "invalid output")
			c.logger.Warn(ctx, "task output failed validation", "run_id", runID, "task", t.Name, "error", err.Error())
			return nil, err
		}
		res.JSON = doc
	}
	c.logger.Debug(ctx, "task completed", "run_id", runID, "task", t.Name, "output_tokens", res.Usage.OutputTokens)
	span.SetStatus(codes.Ok, "")
	return res, nil
}
