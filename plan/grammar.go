package plan

import (
	"encoding/xml"
	"fmt"
	"regexp"
	"strings"
)

// Sentinel values substituted when a step omits one of its sub-fields.
// Parsing degrades for these two fields specifically instead of failing.
const (
	UnknownAgent  = "Unknown"
	NoInstruction = "No instruction"
)

// Step is one parsed plan element: the name of the agent that should perform
// it and the instruction it should follow. Agent resolution happens later.
type Step struct {
	Agent       string
	Instruction string
}

var stepsEnvelopeRe = regexp.MustCompile(`(?s)<steps>.*?</steps>`)

// xmlNode is a generic element tree used to walk arbitrary stepN children.
type xmlNode struct {
	XMLName xml.Name
	Nodes   []xmlNode `xml:",any"`
	Text    string    `xml:",chardata"`
}

func (n *xmlNode) child(name string) *xmlNode {
	for i := range n.Nodes {
		if n.Nodes[i].XMLName.Local == name {
			return &n.Nodes[i]
		}
	}
	return nil
}

// ParseSteps extracts the ordered steps of a tag-enveloped plan:
//
//	<steps>
//	<step1>
//	<agent>...</agent>
//	<instruction>...</instruction>
//	</step1>
//	...
//	</steps>
//
// The first envelope in the text is captured non-greedily and parsed as a
// small element tree. A step missing its agent yields UnknownAgent; one
// missing its instruction yields NoInstruction. If the text contains no
// envelope at all, ParseSteps returns ErrNoPlanFound. If the envelope is
// present but not well-formed, it returns a *MalformedEnvelopeError and the
// caller decides whether to degrade to an empty plan.
func ParseSteps(text string) ([]Step, error) {
	if !strings.Contains(text, "<steps>") {
		return nil, ErrNoPlanFound
	}
	envelope := stepsEnvelopeRe.FindString(text)
	if envelope == "" {
		// Opening tag without a closing tag.
		return nil, &MalformedEnvelopeError{Err: fmt.Errorf("unclosed <steps> envelope")}
	}

	var root xmlNode
	if err := xml.Unmarshal([]byte(envelope), &root); err != nil {
		return nil, &MalformedEnvelopeError{Err: err}
	}

	steps := make([]Step, 0, len(root.Nodes))
	for i := range root.Nodes {
		step := Step{Agent: UnknownAgent, Instruction: NoInstruction}
		if a := root.Nodes[i].child("agent"); a != nil {
			step.Agent = strings.TrimSpace(a.Text)
		}
		if inst := root.Nodes[i].child("instruction"); inst != nil {
			step.Instruction = strings.TrimSpace(inst.Text)
		}
		steps = append(steps, step)
	}
	return steps, nil
}

// SerializeSingleStep renders a one-step plan acknowledgment in the exact
// wire format the planner dialect uses.
func SerializeSingleStep(agent, instruction string) string {
	return fmt.Sprintf(
		"<steps><step1><agent>%s</agent><instruction>%s</instruction></step1></steps>",
		agent, instruction,
	)
}
