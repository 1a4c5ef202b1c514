// Package wizard is the step-orchestration state machine of the checkout
// flow. It owns the immutable State value, derives the ordered list of
// applicable steps from it, gates navigation behind per-step validation, and
// hands the accumulated fragments to the order submission pipeline on the
// last step.
package wizard
