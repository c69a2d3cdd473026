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

/*
Package expr declares the seam a jet file's expression language (validation
rules, calculated columns, default values) would plug into. The language
itself - its grammar, parser, and evaluator - is external to this
repository; Evaluator is the only surface jetdb depends on, exercised here
by a test fixture rather than a real implementation.
*/
package expr

// Row is the subset of cursor.Row an expression can read: column name to
// value. Declared independently of cursor.Row so this package carries no
// dependency on the cursor subsystem.
type Row map[string]any

// Evaluator evaluates a single compiled expression against a row.
type Evaluator interface {
	// Evaluate returns the expression's value for row, or an error if the
	// expression cannot be evaluated against it (a referenced column is
	// missing, a type coercion fails, and so on).
	Evaluate(row Row) (any, error)
}

// Compiler compiles source text into an Evaluator. A real implementation
// would parse and type-check the expression language; jetdb does not ship
// one.
type Compiler interface {
	Compile(source string) (Evaluator, error)
}
