package engine

import "testing"

func TestTokenizerPushData(t *testing.T) {
	t.Parallel()

	script := []byte{0x03, 'a', 'b', 'c', byte(OP_DUP)}
	tok := newScriptTokenizer(script)

	if !tok.Next() {
		t.Fatal("expected first token")
	}
	if string(tok.Data()) != "abc" {
		t.Errorf("Data() = %q, want abc", tok.Data())
	}
	if !tok.Next() {
		t.Fatal("expected second token")
	}
	if tok.Opcode() != OP_DUP {
		t.Errorf("Opcode() = %s, want OP_DUP", tok.Opcode())
	}
	if tok.Next() {
		t.Error("expected no more tokens")
	}
	if tok.Err() != nil {
		t.Errorf("unexpected error: %v", tok.Err())
	}
}

func TestTokenizerTruncatedPush(t *testing.T) {
	t.Parallel()

	script := []byte{0x05, 'a', 'b'}
	tok := newScriptTokenizer(script)
	if tok.Next() {
		t.Fatal("expected truncated push to fail")
	}
	if se, ok := tok.Err().(*Error); !ok || se.Code != ErrTruncatedScript {
		t.Errorf("got %v, want ErrTruncatedScript", tok.Err())
	}
}

func TestTokenizerOP1Negate(t *testing.T) {
	t.Parallel()

	script := []byte{byte(OP_1NEGATE)}
	tok := newScriptTokenizer(script)
	if !tok.Next() {
		t.Fatal("expected a token")
	}
	if ItemToInt(tok.Data()).Int64() != -1 {
		t.Errorf("OP_1NEGATE data decodes to %d, want -1", ItemToInt(tok.Data()).Int64())
	}
}

func TestTokenizerScriptCode(t *testing.T) {
	t.Parallel()

	script := []byte{byte(OP_DUP), byte(OP_CODESEPARATOR), byte(OP_DROP)}
	tok := newScriptTokenizer(script)

	tok.Next() // OP_DUP
	if len(tok.ScriptCode()) != len(script) {
		t.Errorf("ScriptCode before any separator should be the whole script")
	}

	tok.Next() // OP_CODESEPARATOR
	tok.OnCodeSeparator()

	tok.Next() // OP_DROP
	if len(tok.ScriptCode()) != 1 || tok.ScriptCode()[0] != byte(OP_DROP) {
		t.Errorf("ScriptCode() = %x, want just OP_DROP", tok.ScriptCode())
	}
}
