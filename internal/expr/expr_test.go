/*
 * Copyright (c) 2026 Firefly Software Solutions Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package expr

import (
	"fmt"
	"testing"
)

// columnRef and literalEquals are a minimal fixture standing in for the
// expression language this package only declares a seam for - just enough
// to exercise the Evaluator/Compiler contract end to end.
type columnRef string

func (c columnRef) Evaluate(row Row) (any, error) {
	v, ok := row[string(c)]
	if !ok {
		return nil, fmt.Errorf("column %q not present in row", string(c))
	}
	return v, nil
}

type literalEquals struct {
	column columnRef
	want   any
}

func (e literalEquals) Evaluate(row Row) (any, error) {
	got, err := e.column.Evaluate(row)
	if err != nil {
		return nil, err
	}
	return got == e.want, nil
}

// fixtureCompiler recognizes exactly one surface form, "<col> = <value>",
// enough to prove Compiler's contract without writing a real parser.
type fixtureCompiler struct{}

func (fixtureCompiler) Compile(source string) (Evaluator, error) {
	var col string
	var want string
	if _, err := fmt.Sscanf(source, "%s = %s", &col, &want); err != nil {
		return nil, fmt.Errorf("cannot compile %q: %w", source, err)
	}
	return literalEquals{column: columnRef(col), want: want}, nil
}

func TestColumnRefEvaluate(t *testing.T) {
	row := Row{"Status": "ACTIVE"}
	v, err := columnRef("Status").Evaluate(row)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if v != "ACTIVE" {
		t.Errorf("expected ACTIVE, got %v", v)
	}
}

func TestColumnRefEvaluateMissingColumn(t *testing.T) {
	_, err := columnRef("Missing").Evaluate(Row{"Status": "ACTIVE"})
	if err == nil {
		t.Fatal("expected an error referencing a missing column")
	}
}

func TestLiteralEqualsEvaluate(t *testing.T) {
	expr := literalEquals{column: "Status", want: "ACTIVE"}

	match, err := expr.Evaluate(Row{"Status": "ACTIVE"})
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if match != true {
		t.Error("expected a match")
	}

	noMatch, err := expr.Evaluate(Row{"Status": "CLOSED"})
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if noMatch != false {
		t.Error("expected no match")
	}
}

func TestFixtureCompilerRoundTrip(t *testing.T) {
	var compiler Compiler = fixtureCompiler{}
	evaluator, err := compiler.Compile("Status = ACTIVE")
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	match, err := evaluator.Evaluate(Row{"Status": "ACTIVE"})
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if match != true {
		t.Error("expected the compiled expression to match")
	}
}
