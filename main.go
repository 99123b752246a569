package main

import (
	"log"
)

func main() {
	cfg, err := LoadConfig(DefaultConfigFile)
	if err != nil {
		log.Fatalln(err.Error())
	}

	provider := NewSourceListProvider(cfg)
	generator := NewGenerator(cfg)
	if _, err := generator.Generate(provider); err != nil {
		log.Fatalln(err.Error())
	}
}
