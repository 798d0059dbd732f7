// Package conformance verifies that a running server honours the contract
// Essensys controllers depend on: server infos, relaxed status reports and
// the action queue lifecycle.
package conformance

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"time"
)

const (
	StepServerInfo       = "server_info"
	StepStatusSubmission = "status_submission"
	StepInjectAndVerify  = "inject_and_verify_action"
)

const (
	// unquoted keys, as sent by the controller firmware
	statusSampleBody = `{version:"V1",ek:[{k:123,v:"1"}]}`

	alarmKey = "_de67f"
)

type injectSample struct {
	K int    `json:"k"`
	V string `json:"v"`
}

// light bathroom 2 ON, inside the 605..622 block
var sampleInjection = injectSample{K: 615, V: "1"}

// expectedBlockParams must be present on the action generated from sampleInjection.
var expectedBlockParams = []struct {
	K int
	V string
}{
	{K: 590, V: "1"},
	{K: 605, V: "0"},
}

type StepResult struct {
	Name     string
	Passed   bool
	Duration time.Duration
	Err      error
	Warnings []string
}

type Report struct {
	Steps    []StepResult
	Duration time.Duration
}

func (r Report) Passed() bool {
	if len(r.Steps) == 0 {
		return false
	}
	for _, s := range r.Steps {
		if !s.Passed {
			return false
		}
	}
	return true
}

// Err returns the error of the failed step, if any.
func (r Report) Err() error {
	for _, s := range r.Steps {
		if s.Err != nil {
			return s.Err
		}
	}
	return nil
}

// Steps lists every step Run executes, in order.
func Steps() []string {
	return []string{StepServerInfo, StepStatusSubmission, StepInjectAndVerify}
}

func NewChecker(driver *APIDriver) *Checker {
	return &Checker{driver: driver}
}

type Checker struct {
	driver   *APIDriver
	warnings []string
}

// Run executes the checks in order and stops at the first failure.
func (c *Checker) Run(ctx context.Context) Report {
	steps := []struct {
		name  string
		check func(context.Context) error
	}{
		{StepServerInfo, c.CheckServerInfo},
		{StepStatusSubmission, c.CheckStatusSubmission},
		{StepInjectAndVerify, c.InjectAndVerifyAction},
	}

	var report Report
	started := time.Now()
	for _, step := range steps {
		c.warnings = nil
		stepStarted := time.Now()

		err := step.check(ctx)

		result := StepResult{
			Name:     step.name,
			Passed:   err == nil,
			Duration: time.Since(stepStarted),
			Err:      err,
			Warnings: c.warnings,
		}
		report.Steps = append(report.Steps, result)

		if err != nil {
			slog.Error("conformance step failed", slog.String("step", step.name), slog.Any("error", err))
			break
		}
		slog.Info("conformance step passed", slog.String("step", step.name), slog.Duration("duration", result.Duration))
	}
	report.Duration = time.Since(started)

	return report
}

func (c *Checker) CheckServerInfo(ctx context.Context) error {
	resp, err := c.driver.ServerInfos(ctx)
	if err != nil {
		return newCheckError(StepServerInfo, ErrTransport, "%v", err)
	}
	if resp.StatusCode != http.StatusOK {
		return newCheckError(StepServerInfo, ErrUnexpectedStatus, "expected 200, got %d", resp.StatusCode)
	}

	var body map[string]json.RawMessage
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return newCheckError(StepServerInfo, ErrInvalidBody, "%v", err)
	}
	if _, ok := body["isconnected"]; !ok {
		return newCheckError(StepServerInfo, ErrMissingField, "'isconnected' missing")
	}

	return nil
}

func (c *Checker) CheckStatusSubmission(ctx context.Context) error {
	resp, err := c.driver.PostStatus(ctx, []byte(statusSampleBody))
	if err != nil {
		return newCheckError(StepStatusSubmission, ErrTransport, "%v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		return newCheckError(StepStatusSubmission, ErrUnexpectedStatus, "expected 201, got %d", resp.StatusCode)
	}

	return nil
}

func (c *Checker) InjectAndVerifyAction(ctx context.Context) error {
	const step = StepInjectAndVerify

	resp, err := c.driver.Inject(ctx, sampleInjection)
	if err != nil {
		return newCheckError(step, ErrTransport, "%v", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newCheckError(step, ErrUnexpectedStatus, "inject: expected 2xx, got %d", resp.StatusCode)
	}

	queue, err := c.fetchActions(ctx, step)
	if err != nil {
		return err
	}
	if len(queue.Actions) == 0 {
		return newCheckError(step, ErrEmptyQueue, "queue is empty after injection")
	}

	action := queue.Actions[0]
	slog.Debug("found action", slog.String("guid", action.GUID))
	if action.GUID == "" {
		return newCheckError(step, ErrMissingField, "first action has no guid")
	}

	params := action.values()
	for _, expected := range expectedBlockParams {
		if got, ok := params[expected.K]; !ok || got != expected.V {
			return newCheckError(step, ErrParamMismatch, "param %d: expected %q, got %q", expected.K, expected.V, got)
		}
	}

	resp, err = c.driver.Done(ctx, action.GUID)
	if err != nil {
		return newCheckError(step, ErrTransport, "%v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		return newCheckError(step, ErrUnexpectedStatus, "ack: expected 201, got %d", resp.StatusCode)
	}

	queue, err = c.fetchActions(ctx, step)
	if err != nil {
		return err
	}
	if len(queue.Actions) > 0 {
		return newCheckError(step, ErrQueueNotDrained, "%d action(s) left after ack of %s", len(queue.Actions), action.GUID)
	}

	return nil
}

type actionsPayload struct {
	Actions []actionPayload `json:"actions"`
}

type actionPayload struct {
	GUID   string         `json:"guid"`
	Params []paramPayload `json:"params"`
}

type paramPayload struct {
	K int             `json:"k"`
	V json.RawMessage `json:"v"`
}

// values indexes params by k. A non string "v" is recorded in a form no
// expected string can equal, so {"v":1} never matches "1".
func (a actionPayload) values() map[int]string {
	result := make(map[int]string, len(a.Params))
	for _, p := range a.Params {
		var s string
		if err := json.Unmarshal(p.V, &s); err != nil {
			s = nonString(p.V)
		}
		result[p.K] = s
	}
	return result
}

func nonString(raw json.RawMessage) string {
	return fmt.Sprintf("<non-string %s>", bytes.TrimSpace(raw))
}

func (c *Checker) fetchActions(ctx context.Context, step string) (actionsPayload, error) {
	resp, err := c.driver.MyActions(ctx)
	if err != nil {
		return actionsPayload{}, newCheckError(step, ErrTransport, "%v", err)
	}
	if resp.StatusCode != http.StatusOK {
		return actionsPayload{}, newCheckError(step, ErrUnexpectedStatus, "myactions: expected 200, got %d", resp.StatusCode)
	}

	var payload actionsPayload
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		return actionsPayload{}, newCheckError(step, ErrInvalidBody, "%v", err)
	}

	if key, err := firstKey(resp.Body); err == nil && key != alarmKey {
		c.warn("%s is not the first key (found %q)", alarmKey, key)
	}

	return payload, nil
}

func (c *Checker) warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if slices.Contains(c.warnings, msg) {
		return
	}
	slog.Warn(msg)
	c.warnings = append(c.warnings, msg)
}

func firstKey(body []byte) (string, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	if _, err := dec.Token(); err != nil {
		return "", err
	}
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	key, ok := tok.(string)
	if !ok {
		return "", errors.New("empty object")
	}
	return key, nil
}
