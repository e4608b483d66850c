package blockextract

import (
	"strings"
	"testing"
)

func TestJavaExtractSingleMethod(t *testing.T) {
	src := `package com.example;

public class Greeter {
    public String greet(String name) {
        return "hi " + name;
    }
}
`
	e := NewJavaExtractor()
	blocks, err := e.Extract([]byte(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	b := blocks[0]
	if !strings.HasPrefix(b.QualifiedName, "com.example.Greeter.greet(") {
		t.Fatalf("unexpected qualified name %q", b.QualifiedName)
	}
	if !strings.Contains(b.Body, "return \"hi \"") {
		t.Fatalf("body missing expected statement: %q", b.Body)
	}
	if b.StartLine <= 0 || b.EndLine < b.StartLine {
		t.Fatalf("invalid line range [%d,%d]", b.StartLine, b.EndLine)
	}
}

func TestJavaExtractMissingPackageUsesDefault(t *testing.T) {
	src := `class Foo {
    void bar() {}
}
`
	e := NewJavaExtractor()
	blocks, err := e.Extract([]byte(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if !strings.HasPrefix(blocks[0].QualifiedName, JHawkDefaultPackage+".Foo.bar(") {
		t.Fatalf("unexpected qualified name %q", blocks[0].QualifiedName)
	}
}

func TestJavaExtractSkipsAbstractMethods(t *testing.T) {
	src := `package p;

interface Thing {
    void doIt();
}
`
	e := NewJavaExtractor()
	blocks, err := e.Extract([]byte(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(blocks) != 0 {
		t.Fatalf("expected 0 blocks for an abstract method, got %d", len(blocks))
	}
}

func TestJavaExtractDisambiguatesRepeatedOwnerNames(t *testing.T) {
	src := `package p;

class Outer {
    class Inner {
        void a() {}
    }

    void makeAnother() {
        class Inner {
            void b() {}
        }
    }
}
`
	e := NewJavaExtractor()
	blocks, err := e.Extract([]byte(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(blocks) != 3 {
		t.Fatalf("expected 3 blocks (a, makeAnother, b), got %d: %+v", len(blocks), blocks)
	}
	names := map[string]bool{}
	for _, b := range blocks {
		names[b.QualifiedName] = true
	}
	for _, want := range []string{"p.Outer$Inner.a()", "p.Outer$Inner_0.b()"} {
		if !names[want] {
			t.Fatalf("missing qualified name %q in %+v", want, blocks)
		}
	}
}
