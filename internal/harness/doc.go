// Package harness runs demo scenarios against the employee pay model.
//
// A scenario names a CUE roster, a list of steps to perform on its
// employees, and assertions over the resulting trace and final state. The
// transcript a scenario prints is deterministic, so it can be compared
// against a golden file.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: polymorphism
//	title: Polymorphism
//	description: "Interface dispatch and pay overloads"
//	roster: rosters/polymorphism/roster.cue
//	steps:
//	  - op: display
//	    employee: 9
//	  - op: pay
//	    employee: 9
//	    args: { bonus: 2 }
//	    expect:
//	      amount: 27
//	  - op: set_name
//	    employee: 9
//	    args: { name: "" }
//	    expect:
//	      error: "cannot be empty"
//	assertions:
//	  - type: trace_contains
//	    op: pay
//	    employee: 9
//	  - type: final_state
//	    employee: 9
//	    expect: { name: "Bob" }
//
// Employees are always referenced by the id declared in the roster, even
// after a set_id step has changed it.
//
// # Step Operations
//
//   - display: prints the employee's identity line
//   - pay: prints a pay statement; the args select the adjustment
//     (none, bonus, bonus+deduction, extra_hours, hourly_bonus+overtime_hours)
//   - set_id, set_name: validated mutation, prints the updated identity
//   - submit_leave, cancel_leave: args kind (paid|casual) and days
//   - approve_leave: a manager approves days of leave for a subordinate
//
// A step that fails without an expect.error clause aborts the scenario and
// Run returns the error. With an expect.error clause the failure is printed
// as "Rejected: <message>" and the run continues.
//
// # Assertion Types
//
//   - trace_contains: an op was performed (optionally on a given employee)
//   - trace_order: ops appear in the given order
//   - trace_count: an op was performed exactly N times
//   - final_state: field values of an employee after the run
package harness
