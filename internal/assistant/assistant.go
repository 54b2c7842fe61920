// Copyright (c) 2026 Snowq
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package assistant turns plain-language analytics questions into warehouse
// answers.
//
// Key features include:
//   - Schema-aware SQL generation through a chat completion model
//   - Execution of the generated statement against the live warehouse
//   - A one-sentence headline summarizing the result
//   - An optional bar chart fragment when the result shape allows one
package assistant

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"snowq/cli/internal/chart"
	apperrors "snowq/cli/internal/errors"
	"snowq/cli/internal/llm"
	"snowq/cli/internal/warehouse"
)

// Completer is the slice of the LLM client the assistant needs.
type Completer interface {
	Complete(ctx context.Context, messages []llm.Message) (string, error)
}

// Warehouse is the slice of the warehouse session the assistant needs.
type Warehouse interface {
	Catalog(ctx context.Context) (warehouse.Catalog, error)
	Run(ctx context.Context, query string) (*warehouse.Table, error)
}

// Response carries everything a caller can render from one question.
type Response struct {
	Question  string           `json:"question"`
	SQL       string           `json:"sql"`
	Headline  string           `json:"headline"`
	Table     *warehouse.Table `json:"table"`
	ChartHTML string           `json:"chart_html,omitempty"`
}

// Assistant wires the completion model to a warehouse session.
type Assistant struct {
	completer Completer
	wh        Warehouse
	logger    *zap.SugaredLogger
}

// New creates an assistant over the given model and warehouse session.
func New(completer Completer, wh Warehouse, logger *zap.SugaredLogger) *Assistant {
	return &Assistant{completer: completer, wh: wh, logger: logger}
}

// Answer runs the full question pipeline: fetch the catalog, generate SQL,
// execute it, then summarize the result. Chart generation is best effort;
// a result that cannot be charted still produces a complete response.
func (a *Assistant) Answer(ctx context.Context, question string) (*Response, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, apperrors.New(apperrors.QueryFailed, "question is empty")
	}

	catalog, err := a.wh.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	query, err := a.generateSQL(ctx, catalog, question)
	if err != nil {
		return nil, err
	}
	a.logger.Debugw("generated query", "sql", query)

	table, err := a.wh.Run(ctx, query)
	if err != nil {
		return nil, err
	}

	headline, err := a.generateHeadline(ctx, question, table)
	if err != nil {
		return nil, err
	}

	resp := &Response{
		Question: question,
		SQL:      query,
		Headline: headline,
		Table:    table,
	}

	if html, err := chart.Bar(table, headline); err != nil {
		a.logger.Debugw("result not chartable", "reason", err)
	} else {
		resp.ChartHTML = html
	}

	return resp, nil
}

func (a *Assistant) generateSQL(ctx context.Context, catalog warehouse.Catalog, question string) (string, error) {
	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: sqlPrompt(catalog)},
		{Role: llm.RoleUser, Content: question},
	}

	reply, err := a.completer.Complete(ctx, messages)
	if err != nil {
		return "", err
	}

	query := extractSQL(reply)
	if query == "" {
		return "", apperrors.New(apperrors.LLMRequestFailed, "model returned no SQL statement")
	}
	return query, nil
}

func (a *Assistant) generateHeadline(ctx context.Context, question string, table *warehouse.Table) (string, error) {
	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: headlineSystemPrompt},
		{Role: llm.RoleUser, Content: headlinePrompt(question, table)},
	}

	reply, err := a.completer.Complete(ctx, messages)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(reply), nil
}
