/**
 * Copyright (c) 2019, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package handler

import (
	"net/http"
	"time"

	"github.com/botobag/relgraph/graphql/executor"
)

// Outcome classifies how a request was served.
type Outcome string

// Enumeration of Outcome
const (
	// The operation was executed without errors.
	OutcomeSuccess Outcome = "success"
	// The operation was executed but the result carries errors.
	OutcomeFieldError Outcome = "field_error"
	// The request was refused before execution (empty query, bad request, syntax or preparation
	// error).
	OutcomeRejected Outcome = "rejected"
)

// Observation describes a served request.
type Observation struct {
	HTTPRequest *http.Request

	// Operation that was executed; nil if the request was rejected.
	Operation *executor.PreparedOperation

	Outcome  Outcome
	Duration time.Duration
}

// OperationType returns the type of the executed operation or "unknown" when the request was
// rejected.
func (o *Observation) OperationType() string {
	if o.Operation == nil {
		return "unknown"
	}
	return string(o.Operation.Type())
}

// Observer is notified after each request is served. Implementations must be safe for concurrent
// use.
type Observer interface {
	ObserveRequest(observation *Observation)
}

type nopObserver struct{}

func (nopObserver) ObserveRequest(*Observation) {}
