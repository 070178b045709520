package perr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSyntaxErrorMessage(t *testing.T) {
	err := &SyntaxError{Filename: "f.w", Line: 3, Column: 5, Message: "unexpected token"}
	assert.Equal(t, `f.w:3:5: syntax error: unexpected token`, err.Error())
}

func TestImportErrorWrapsInner(t *testing.T) {
	inner := errors.New("file not found")
	err := &ImportError{Module: "geometry", Inner: inner}
	assert.Contains(t, err.Error(), "geometry")
	assert.ErrorIs(t, err, inner)
}

func TestImportErrorWithoutInner(t *testing.T) {
	err := &ImportError{Module: "geometry"}
	assert.Contains(t, err.Error(), "module not found")
}

func TestIOErrorUnwraps(t *testing.T) {
	inner := errors.New("permission denied")
	err := &IOError{Path: "main.w", Inner: inner}
	assert.ErrorIs(t, err, inner)
}

func TestCodeOfDispatchesByErrorType(t *testing.T) {
	assert.Equal(t, CodeSyntax, CodeOf(&SyntaxError{}))
	assert.Equal(t, CodeNameNotFound, CodeOf(&NameNotFound{Name: "x"}))
	assert.Equal(t, CodeImport, CodeOf(&ImportError{Module: "m"}))
	assert.Equal(t, CodeUnsupported, CodeOf(&UnsupportedConstruct{What: "native import"}))
	assert.Equal(t, CodeIO, CodeOf(&IOError{Path: "f"}))
	assert.Equal(t, Code(""), CodeOf(errors.New("plain")))
}

func TestWrapProducesCLIError(t *testing.T) {
	err := Wrap(CodeSyntax, "parse failed", errors.New("bad token"))
	var cliErr CLIError
	require := assert.New(t)
	require.ErrorAs(err, &cliErr)
	require.Equal("ERR_SYNTAX", cliErr.Code)
	require.Contains(err.Error(), "bad token")
}

func TestCLIErrorJSON(t *testing.T) {
	err := CLIError{Code: "ERR_IO", Message: "failed"}
	assert.JSONEq(t, `{"code":"ERR_IO","message":"failed"}`, err.JSON())
}
