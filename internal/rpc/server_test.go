package rpc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"cdb/internal/compdb"
	"cdb/internal/logging"
	"cdb/internal/testutil"
)

func newTestServer(t *testing.T, input string) (*Server, *bytes.Buffer) {
	t.Helper()
	logger := logging.NewLogger(logging.Config{Format: logging.HumanFormat, Level: logging.ErrorLevel})
	var out bytes.Buffer
	factory := func() (*compdb.Resolver, error) {
		return compdb.NewResolver(nil), nil
	}
	server := NewServerWithStreams("test", factory, logger, strings.NewReader(input), &out)
	return server, &out
}

// responses splits the output buffer into decoded messages.
func responses(t *testing.T, out *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var msgs []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		if line == "" {
			continue
		}
		var msg map[string]interface{}
		if err := json.Unmarshal([]byte(line), &msg); err != nil {
			t.Fatalf("Response is not valid JSON: %v\n%s", err, line)
		}
		msgs = append(msgs, msg)
	}
	return msgs
}

func TestInitializeAndToolsList(t *testing.T) {
	input := `{"jsonrpc":"2.0","id":1,"method":"initialize"}` + "\n" +
		`{"jsonrpc":"2.0","id":2,"method":"tools/list"}` + "\n"
	server, out := newTestServer(t, input)

	if err := server.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	msgs := responses(t, out)
	if len(msgs) != 2 {
		t.Fatalf("Expected 2 responses, got %d", len(msgs))
	}

	result, ok := msgs[1]["result"].(map[string]interface{})
	if !ok {
		t.Fatalf("tools/list has no result: %v", msgs[1])
	}
	tools, ok := result["tools"].([]interface{})
	if !ok || len(tools) != 3 {
		t.Fatalf("Expected 3 tools, got %v", result["tools"])
	}
}

func TestGetCompileOptionsTool(t *testing.T) {
	proj := testutil.NewProject(t)
	a := proj.WriteFile(t, "a.c", "")
	proj.WriteDatabase(t, ".", []testutil.Command{
		{Directory: proj.Root, File: a, Command: "cc -DA=1 -Iinc a.c"},
	})

	call := fmt.Sprintf(
		`{"jsonrpc":"2.0","id":7,"method":"tools/call","params":{"name":"get_compile_options","arguments":{"file":%q}}}`,
		a)
	server, out := newTestServer(t, call+"\n")

	if err := server.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	msgs := responses(t, out)
	if len(msgs) != 1 {
		t.Fatalf("Expected 1 response, got %d", len(msgs))
	}
	result, ok := msgs[0]["result"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected a result, got %v", msgs[0])
	}
	if result["source"] != "exact" {
		t.Errorf("Expected exact source, got %v", result["source"])
	}
	candidates, ok := result["candidates"].([]interface{})
	if !ok || len(candidates) != 1 {
		t.Fatalf("Expected 1 candidate, got %v", result["candidates"])
	}
	first, _ := candidates[0].([]interface{})
	if len(first) != 2 || first[0] != "-DA=1" || first[1] != "-Iinc" {
		t.Errorf("Unexpected options: %v", first)
	}
}

func TestLocateDatabaseTool(t *testing.T) {
	proj := testutil.NewProject(t)
	want := proj.WriteDatabase(t, ".", nil)
	file := proj.WriteFile(t, "src/x.c", "")

	call := fmt.Sprintf(
		`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"locate_database","arguments":{"file":%q}}}`,
		file)
	server, out := newTestServer(t, call+"\n")

	if err := server.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	msgs := responses(t, out)
	result, ok := msgs[0]["result"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected a result, got %v", msgs[0])
	}
	if result["database"] != want {
		t.Errorf("database = %v, want %s", result["database"], want)
	}
	if result["origin"] != "ancestor" {
		t.Errorf("origin = %v, want ancestor", result["origin"])
	}
}

func TestUnknownMethodAndTool(t *testing.T) {
	input := `{"jsonrpc":"2.0","id":1,"method":"nope"}` + "\n" +
		`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"nope","arguments":{}}}` + "\n"
	server, out := newTestServer(t, input)

	if err := server.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	msgs := responses(t, out)
	if len(msgs) != 2 {
		t.Fatalf("Expected 2 responses, got %d", len(msgs))
	}
	for i, msg := range msgs {
		errObj, ok := msg["error"].(map[string]interface{})
		if !ok {
			t.Fatalf("Response %d should be an error: %v", i, msg)
		}
		if errObj["code"] != float64(MethodNotFound) {
			t.Errorf("Response %d code = %v, want %d", i, errObj["code"], MethodNotFound)
		}
	}
}

func TestParseErrorRecovery(t *testing.T) {
	input := "{garbage\n" +
		`{"jsonrpc":"2.0","id":1,"method":"initialize"}` + "\n"
	server, out := newTestServer(t, input)

	if err := server.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	msgs := responses(t, out)
	if len(msgs) != 2 {
		t.Fatalf("Expected parse error plus response, got %d messages", len(msgs))
	}
	errObj, ok := msgs[0]["error"].(map[string]interface{})
	if !ok || errObj["code"] != float64(ParseError) {
		t.Errorf("Expected parse error first, got %v", msgs[0])
	}
	if _, ok := msgs[1]["result"]; !ok {
		t.Errorf("Expected the server to keep serving after a parse error: %v", msgs[1])
	}
}

func TestNotificationsProduceNoResponse(t *testing.T) {
	input := `{"jsonrpc":"2.0","method":"notifications/initialized"}` + "\n"
	server, out := newTestServer(t, input)

	if err := server.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if strings.TrimSpace(out.String()) != "" {
		t.Errorf("Expected no response to a notification, got %s", out.String())
	}
}
