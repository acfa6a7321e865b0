package yamlio

import (
	"errors"
	"io"

	"gopkg.in/yaml.v3"
)

// Job is a batch together with a call of a function on some of its
// columns.
//
//	call: multiIf
//	args: [c, x, y]
//	columns:
//	  - {name: c, type: bool, values: [true, false]}
//	  - {name: x, type: int8, values: [1, 2]}
//	  - {name: y, type: int8, values: [3, 4]}
type Job struct {
	Batch `yaml:",inline"`

	Call string   `yaml:"call"`
	Args []string `yaml:"args"`
}

// ReadJob decodes a Job from r, rejecting unknown fields.
func ReadJob(r io.Reader) (*Job, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var j Job
	if err := dec.Decode(&j); err != nil {
		return nil, err
	}
	if j.Call == "" {
		return nil, errors.New("call field missing")
	}
	return &j, nil
}
