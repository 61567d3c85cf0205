// Package wealthflow models the personal balance sheet of a household and
// lets users explore what-if scenarios on it.
//
// The live financials are four collections of items: assets, liabilities,
// monthly incomes and monthly expenses. Metrics such as the net worth and
// the monthly cash flow are derived from them and never stored.
//
// A scenario session starts from a copy of the live financials. Releasing an
// item models selling an asset, paying off a liability or cutting a cash
// flow; releasing a liability also releases the expense that pays it, as
// decided by a Linker. A session is projected against the live financials
// to show the new metrics and the one-off cash it generates or requires.
// Saving a session asks a Summarizer for a short description of what
// changed, and records a Scenario.
//
// A Workspace bundles the live Financials, the scenario Simulator and the
// advice history of one user, and reports every change as a Document for
// persistence.
//
// This package serves as the foundational logic for the `wf` command-line
// tool and its HTTP server.
package wealthflow
