package generator

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chriserin/catchr/internal/artifact"
	"github.com/chriserin/catchr/internal/keyword"
	"github.com/chriserin/catchr/internal/parser"
	"github.com/chriserin/catchr/internal/scope"
)

var artifactOpts = cmp.Options{
	cmpopts.IgnoreFields(artifact.Procedure{}, "Line"),
	cmpopts.IgnoreFields(artifact.Namespace{}, "Line"),
	cmpopts.EquateEmpty(),
}

func s(text string) *artifact.Stmt { return &artifact.Stmt{Text: text} }

func generate(t *testing.T, src string, opts ...Option) artifact.Artifact {
	t.Helper()
	blk, err := parser.ParseBlock([]byte(src))
	require.NoError(t, err)
	return New(opts...).Generate(blk, scope.Empty())
}

func TestGenerate_EmptyLeafBlock(t *testing.T) {
	got := generate(t, `when "Hello!" { }`)

	want := &artifact.Procedure{Name: "when_hello", Annotation: artifact.Sync{}}
	if diff := cmp.Diff(want, got, artifactOpts); diff != "" {
		t.Errorf("Generate() mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerate_NestedScopes(t *testing.T) {
	got := generate(t, `section "tests" {
	x := 1
	when "hello" {
		check(true)
		then "whatever" {
			check(true)
		}
	}

	check(x == 1)
}`)

	want := &artifact.Namespace{
		Name: "section_tests",
		Children: []artifact.Artifact{
			&artifact.Namespace{
				Name: "when_hello",
				Children: []artifact.Artifact{
					&artifact.Procedure{
						Name:       "then_whatever",
						Annotation: artifact.Sync{},
						Body: artifact.Block{
							s("x := 1"),
							artifact.Block{
								s("check(true)"),
								artifact.Block{s("check(true)")},
							},
							s("check(x == 1)"),
						},
					},
				},
			},
		},
	}
	if diff := cmp.Diff(want, got, artifactOpts); diff != "" {
		t.Errorf("Generate() mismatch (-want +got):\n%s", diff)
	}

	paths := artifact.Procedures(got)
	require.Len(t, paths, 1)
	assert.Equal(t, []string{"x := 1", "check(true)", "check(true)", "check(x == 1)"},
		paths[0].Procedure.Body.Statements())
}

func TestGenerate_MultipleCasesShareContext(t *testing.T) {
	got := generate(t, `section "tests" {
	check(1 == 1)

	case "one" {
		check(2 == 2)
	}

	check(3 == 3)

	case "two" {
		check(4 == 4)
	}

	check(5 == 5)
}`)

	want := &artifact.Namespace{
		Name: "section_tests",
		Children: []artifact.Artifact{
			&artifact.Procedure{
				Name:       "case_one",
				Annotation: artifact.Sync{},
				Body: artifact.Block{
					s("check(1 == 1)"),
					artifact.Block{s("check(2 == 2)")},
					s("check(3 == 3)"),
					s("check(5 == 5)"),
				},
			},
			&artifact.Procedure{
				Name:       "case_two",
				Annotation: artifact.Sync{},
				Body: artifact.Block{
					s("check(1 == 1)"),
					s("check(3 == 3)"),
					artifact.Block{s("check(4 == 4)")},
					s("check(5 == 5)"),
				},
			},
		},
	}
	if diff := cmp.Diff(want, got, artifactOpts); diff != "" {
		t.Errorf("Generate() mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerate_SiblingIsolation(t *testing.T) {
	got := generate(t, `section "s" {
	shared()
	when "left" {
		leftSetup()
		then "l1" { leftLeaf1() }
		then "l2" { leftLeaf2() }
		leftTeardown()
	}
	between()
	when "right" {
		then "r1" { rightLeaf() }
	}
	last()
}`)

	paths := artifact.Procedures(got)
	require.Len(t, paths, 3)

	byName := map[string][]string{}
	for _, p := range paths {
		byName[p.Procedure.Name] = p.Procedure.Body.Statements()
	}

	assert.Equal(t, []string{"shared()", "leftSetup()", "leftLeaf1()", "leftTeardown()", "between()", "last()"}, byName["then_l1"])
	assert.Equal(t, []string{"shared()", "leftSetup()", "leftLeaf2()", "leftTeardown()", "between()", "last()"}, byName["then_l2"])
	assert.Equal(t, []string{"shared()", "between()", "rightLeaf()", "last()"}, byName["then_r1"])
}

func TestGenerate_LeafCountMatchesParser(t *testing.T) {
	src := `section "root" {
	given "a" {
		when "b" { then "c" {} then "d" {} }
		when "e" {}
	}
	given "f" {
		case "g" { given "h" { then "i" {} } }
	}
	case "j" {}
}`
	blk, err := parser.ParseBlock([]byte(src))
	require.NoError(t, err)

	got := New().Generate(blk, scope.Empty())
	assert.Len(t, artifact.Procedures(got), parser.Leaves(blk))
	assert.Len(t, artifact.Procedures(got), 5)
}

func TestGenerate_AnnotationReachesEveryLeaf(t *testing.T) {
	got := generate(t, `section "s" {
	when "a" { then "b" { x() } }
	case "c" { y() }
}`, WithAnnotation(artifact.Parallel{}))

	paths := artifact.Procedures(got)
	require.Len(t, paths, 2)
	for _, p := range paths {
		assert.Equal(t, artifact.Parallel{}, p.Procedure.Annotation)
		assert.Equal(t, "t.Parallel()", p.Procedure.Body.Statements()[0])
	}
}

func TestGenerate_DuplicateSiblingsAreKept(t *testing.T) {
	got := generate(t, `section "s" {
	case "same" { a() }
	case "Same!" { b() }
}`)

	ns := got.(*artifact.Namespace)
	require.Len(t, ns.Children, 2)
	assert.Equal(t, "case_same", ns.Children[0].Ident())
	assert.Equal(t, "case_same", ns.Children[1].Ident())
}

func TestGenerateBody_FramesTopLevelBlocks(t *testing.T) {
	body, err := parser.ParseBody([]byte(`
	setup()
	when "a" { one() }
	teardown()
	`))
	require.NoError(t, err)

	got := New().GenerateBody(body)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"setup()", "one()", "teardown()"}, got[0].(*artifact.Procedure).Body.Statements())
}

func TestIdentifier(t *testing.T) {
	tests := []struct {
		kind keyword.Kind
		name string
		want string
	}{
		{keyword.When, "Hello World!", "when_hello_world"},
		{keyword.Then, "", "then_empty"},
		{keyword.Section, "my_struct.foo(1) should equal 2", "section_my_struct_foo_1_should_equal_2"},
		{keyword.Anonymous, "Top Level", "top_level"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Identifier(&parser.Block{Kind: tt.kind, Name: tt.name}))
	}
}

func TestIdentifier_DistinctSiblingsDoNotCollide(t *testing.T) {
	names := map[string]bool{}
	for _, blk := range []*parser.Block{
		{Kind: keyword.When, Name: "a"},
		{Kind: keyword.Then, Name: "a"},
		{Kind: keyword.When, Name: "b"},
		{Kind: keyword.Case, Name: "a b"},
	} {
		id := Identifier(blk)
		assert.False(t, names[id], id)
		names[id] = true
	}
}
