package tlslog

import (
	"fmt"

	"github.com/crewjam/rfc5424"
)

// KV builds a structured-data parameter so call sites read as
// lgr.Info("...", log.KV("k", v)).
func KV(name string, value interface{}) (r rfc5424.SDParam) {
	r.Name = name
	switch v := value.(type) {
	case string:
		r.Value = v
	default:
		r.Value = fmt.Sprintf("%v", value)
	}
	return
}

// KVErr is a convenience KV for the common "error" parameter.
func KVErr(err error) rfc5424.SDParam {
	return KV("error", err)
}
