package logtail

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Read returns at most maxLines from the end of the file at path. A
// non-positive maxLines returns every line. A missing file yields no lines.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	return tail(file, maxLines)
}

func tail(r io.Reader, maxLines int) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Entry is one decoded zap JSON line.
type Entry struct {
	Time    string
	Level   string
	Message string
	Fields  map[string]any
}

// Parse decodes a zap production JSON line. ok is false for anything else.
func Parse(line string) (Entry, bool) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		return Entry{}, false
	}
	msg, ok := raw["msg"].(string)
	if !ok {
		return Entry{}, false
	}
	e := Entry{Message: msg, Fields: map[string]any{}}
	e.Level, _ = raw["level"].(string)
	e.Time, _ = raw["ts"].(string)
	for k, v := range raw {
		switch k {
		case "msg", "level", "ts", "caller", "stacktrace":
			continue
		}
		e.Fields[k] = v
	}
	return e, true
}

var (
	timeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	keyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6495ED"))
	msgStyle   = lipgloss.NewStyle().Bold(true)
	levelStyle = map[string]lipgloss.Style{
		"debug": lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true),
		"info":  lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		"warn":  lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
		"error": lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
)

// Format renders a log line for the terminal: time, level, message and
// the remaining fields as sorted key=value pairs. Lines that are not zap
// JSON are returned unchanged.
func Format(line string) string {
	e, ok := Parse(line)
	if !ok {
		return line
	}

	level := strings.ToUpper(e.Level)
	if style, ok := levelStyle[strings.ToLower(e.Level)]; ok {
		level = style.Render(level)
	}

	var b strings.Builder
	if e.Time != "" {
		b.WriteString(timeStyle.Render(e.Time))
		b.WriteString(" ")
	}
	b.WriteString(level)
	b.WriteString(" ")
	b.WriteString(msgStyle.Render(e.Message))

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString(" ")
		b.WriteString(keyStyle.Render(k))
		b.WriteString("=")
		b.WriteString(formatValue(e.Fields[k]))
	}
	return b.String()
}

// FormatLines applies Format to every line.
func FormatLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = Format(line)
	}
	return out
}

func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		if strings.ContainsAny(val, " \t\"=") {
			return fmt.Sprintf("%q", val)
		}
		return val
	case float64:
		return fmt.Sprintf("%v", val)
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(data)
	}
}
