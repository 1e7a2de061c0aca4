// Copyright (c) 2026, the DSC Community Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// DSCFormatter renders every record as {"<level>": "<message>"} with
// level one of trace, debug, info, warning, error, critical. Structured
// fields are folded into the message as sorted key=value pairs
type DSCFormatter struct{}

func (f *DSCFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	msg := entry.Message

	if len(entry.Data) > 0 {
		keys := make([]string, 0, len(entry.Data))
		for k := range entry.Data {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		pairs := make([]string, 0, len(keys))
		for _, k := range keys {
			pairs = append(pairs, fmt.Sprintf("%s=%v", k, entry.Data[k]))
		}

		msg = msg + " " + strings.Join(pairs, " ")
	}

	raw, err := json.Marshal(map[string]string{levelName(entry.Level): msg})
	if err != nil {
		return nil, err
	}

	return append(raw, '\n'), nil
}

func levelName(level logrus.Level) string {
	switch level {
	case logrus.FatalLevel, logrus.PanicLevel:
		return "critical"
	default:
		// logrus names match the DSC levels, including "warning"
		return level.String()
	}
}
