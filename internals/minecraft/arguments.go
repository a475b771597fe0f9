package minecraft

import "encoding/json"

// Arguments is a list of launch arguments, each either a plain string or a
// rule gated argument object in the manifest
type Arguments []Argument

// Argument is one launch argument (or a group of them) with optional rules
type Argument struct {
	Value stringSlice `json:"value"`
	Rules []Rule      `json:"rules,omitempty"`
}

// Matched returns the argument values whose rules match the given context,
// in manifest order
func (a Arguments) Matched(ctx Context) []string {
	args := make([]string, 0, len(a))
	for _, arg := range a {
		if !MatchArgumentRules(arg.Rules, ctx) {
			continue
		}
		args = append(args, arg.Value...)
	}
	return args
}

// UnmarshalJSON is needed because an argument sometimes is a plain string
func (a *Argument) UnmarshalJSON(data []byte) error {
	if data[0] == '{' {
		type plain Argument
		var arg plain
		if err := json.Unmarshal(data, &arg); err != nil {
			return err
		}
		*a = Argument(arg)
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	a.Value = []string{str}
	a.Rules = nil
	return nil
}

// stringSlice is a slice of strings that can be unmarshalled from a string or a []string
type stringSlice []string

func (w *stringSlice) UnmarshalJSON(data []byte) error {
	if data[0] == '[' {
		var arg []string
		if err := json.Unmarshal(data, &arg); err != nil {
			return err
		}
		*w = arg
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*w = []string{str}
	return nil
}
