// Package harness provides conformance testing for predicate translation.
//
// The harness loads scenario files, parses and translates each predicate,
// optionally runs the result against a SQLite fixture, and compares every
// observable (query text, bind parameters, inspection warnings, matching
// rows, error kind) with the scenario's expectations.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: mixed_logic
//	description: "OR over a negated Contains and a StartsWith"
//	predicate: 'row => row.Id != 1 || !row.Name.Contains("xyz") && row.Name.StartsWith("yy")'
//	fixture:
//	  table: people
//	  setup:
//	    - CREATE TABLE people (Id INTEGER, Name TEXT)
//	    - INSERT INTO people VALUES (1, 'abc'), (2, 'xyzab')
//	expect:
//	  query_text: "Id <> @Id OR ((NOT LIKE('%' || @Name || '%', Name)) AND LIKE(@Name_2 || '%', Name))"
//	  parameters:
//	    - { name: "@Id", value: 1 }
//	    - { name: "@Name", value: xyz }
//	    - { name: "@Name_2", value: yy }
//	  rows:
//	    - { Id: 2 }
//
// A scenario expecting failure sets expect.error to a translation error kind
// (ARITY_ERROR, UNSUPPORTED_CALL, ...) or SYNTAX_ERROR, and nothing else.
//
// Omitted parameters, warnings and (with a fixture) rows mean "none". Rows
// use subset matching per row: only the listed columns are compared, but the
// row count must match.
//
// # Deterministic Testing
//
// Every scenario runs against its own in-memory SQLite database and rows
// are returned in rowid order, so snapshots are byte-identical across runs.
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/mixed_logic.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(scenario)
//	if !result.Pass {
//	    for _, msg := range result.Errors {
//	        log.Println(msg)
//	    }
//	}
package harness
