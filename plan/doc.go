// Package plan implements the text grammars that turn free-form model
// output into an ordered list of plan steps.
//
// Two families of dialects exist because planning agents prompt their
// backends differently: the tag-enveloped dialect used by the general
// planner (<steps><stepN><agent>..</agent><instruction>..</instruction>)
// and the decomposition dialects used for SQL sub-query generation (either
// <instructionN> tag pairs or an enumerated "1. ..." list). Each failure
// mode has its own error so callers can distinguish a missing envelope from
// a malformed one.
//
// Parsing is pure and synchronous; the package never resolves agent names
// against live agents. That is the agent layer's job.
package plan
