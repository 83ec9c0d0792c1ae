package main

import (
	"flag"
	"github.com/aws/aws-lambda-go/lambda"
	echoadapter "github.com/awslabs/aws-lambda-go-api-proxy/echo"
	"github.com/umoja4life/fatashi"
	"github.com/umoja4life/fatashi/adapters/jsonstorage"
	"github.com/umoja4life/fatashi/adapters/webapi"
	"github.com/umoja4life/fatashi/service"
	"go.uber.org/zap"
	"log"
)

var flagSourceFile = flag.String("source-file", "./fatashi-compiled.json", "File written by fatashi compile.")

func main() {
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalln("Failed to initialize logger:", err)
	}
	defer func() { _ = logger.Sync() }()

	data, err := jsonstorage.Open(*flagSourceFile)
	if err != nil {
		logger.Fatal("Failed to open compiled dictionaries", zap.Error(err))
	}

	svc := &service.Service{
		Options: service.Options{Name: "fatashi", Prod: data.Prod},
		Logger:  logger,
	}
	for kind, dst := range map[service.ChainKind]*fatashi.Chain{
		service.ChainKamusi:  &svc.Kamusi,
		service.ChainMethali: &svc.Methali,
		service.ChainTest:    &svc.Test,
	} {
		*dst, err = data.Chain(string(kind))
		if err != nil {
			logger.Fatal("Failed to load chain", zap.Error(err))
		}
	}

	api := webapi.SetupWithoutListener(logger)
	webapi.Dictionary(api.Group("/api"), svc, logger)

	lambda.Start(echoadapter.New(api).ProxyWithContext)
}
