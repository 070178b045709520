package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/photon-lang/photon/internal/ir"
	"github.com/photon-lang/photon/internal/perr"
)

func TestRegisterAllRegistersEverySpecTarget(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, RegisterAll(reg))
	for _, lang := range []string{"c", "py", "dart", "js", "ts", "haxe", "d"} {
		_, ok := reg.Resolve(lang)
		assert.True(t, ok, "expected backend for %q", lang)
	}
}

func TestResolveFollowsAlias(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(NewPython()))
	t1, ok := reg.Resolve("python")
	require.True(t, ok)
	assert.Equal(t, "py", t1.Lang())
}

func TestResolveUnknownLanguage(t *testing.T) {
	reg := NewRegistry()
	_, ok := reg.Resolve("rust")
	assert.False(t, ok)
}

func TestRegisterDuplicateLanguageErrors(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(NewC()))
	err := reg.Register(NewC())
	assert.Error(t, err)
}

func TestRegisterConflictingAliasErrors(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(NewPython()))
	err := reg.Register(&stub{lang: "py2", aliases: []string{"python"}})
	assert.Error(t, err)
}

func TestByExtensionResolvesRegisteredBackend(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(NewJavaScript()))
	tr, ok := reg.ByExtension("js")
	require.True(t, ok)
	assert.Equal(t, "js", tr.Lang())
}

func TestStubRunRendersAssignAndPrint(t *testing.T) {
	assign := ir.NewAssign(ir.NewVar("x", ""), ir.NewNum("1", false))
	print := ir.NewPrint([]ir.Node{ir.NewVar("x", "")})
	seq := ir.NewSequence([]ir.Node{assign, print})

	out, err := NewPython().Run(seq)
	require.NoError(t, err)
	assert.Contains(t, out, "x = 1")
	assert.Contains(t, out, "print(x)")
}

func TestStubRunUnsupportedConstruct(t *testing.T) {
	seq := ir.NewSequence([]ir.Node{ir.NewBreak()})
	_, err := NewC().Run(seq)
	require.Error(t, err)
	var uc *perr.UnsupportedConstruct
	assert.ErrorAs(t, err, &uc)
}
