// Package core defines the fundamental abstractions of Furrow: the Agent
// contract with its synchronous send/receive/reply protocol, the Message
// exchanged between agents, the SubTask unit of delegated work and the
// capability descriptors (planning, execution) an orchestrator can probe
// for without knowing an agent's concrete kind.
package core
