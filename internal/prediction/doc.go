// Package prediction owns the injury-prediction form and its request lifecycle.
//
// A Controller holds the five player attributes as they are edited, gates
// submission on their validity, and drives one exchange with a Predictor per
// attempt: Idle → Submitting → Succeeded | Failed. No state is terminal; a new
// Submit from Succeeded or Failed starts over at Submitting.
package prediction
