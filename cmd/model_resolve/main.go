package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/23skdu/longbow-scribe/internal/ollama"
)

// model_resolve prints the checkpoint path a model argument resolves to.

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		log.Fatal("usage: model_resolve <model-name-or-path>")
	}

	path, err := ollama.ResolveOrPath(flag.Arg(0))
	if err != nil {
		log.Fatalf("Failed to resolve model: %v", err)
	}
	fmt.Println(path)
}
