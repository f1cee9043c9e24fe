// Package employee implements the employee pay model used by the demos.
//
// An Employee has an identity and a name and knows how to compute its pay.
// Two variants exist:
//
//   - Salaried ("permanent"): pay is the fixed period salary.
//   - Hourly ("contract"): pay is hourly rate times hours worked.
//
// Both variants embed a Record, the encapsulated identity whose setters
// validate their input and return a *ValidationError instead of storing an
// invalid value. Constructors validate the same way.
//
// Pay adjustments are distinctly named methods on each variant
// (CalculatePayWithBonus, CalculatePayWithExtraHours, ...). They report a
// derived total and never mutate the stored salary, rate or hours.
//
// Salaried employees additionally carry paid and casual leave balances and,
// when their role is Manager, a list of subordinates whose leave they may
// approve.
package employee
