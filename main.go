package main

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finance-server/api"
	"github.com/carson-networks/finance-server/internal/config"
	"github.com/carson-networks/finance-server/internal/flow"
	"github.com/carson-networks/finance-server/internal/logging"
	"github.com/carson-networks/finance-server/internal/pin"
	"github.com/carson-networks/finance-server/internal/service"
	"github.com/carson-networks/finance-server/internal/storage"
)

func main() {
	logger := logging.SetupLogging()
	logrus.Info("finance-server starting")

	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	dbStorage := storage.NewStorage(envConfig)

	runner := flow.NewRunner(logger, 4)
	runner.Start()
	defer runner.Stop()

	svc := service.NewService(dbStorage, runner, envConfig, logger)
	pinValidator := pin.NewHTTPValidator(envConfig.PinValidatorEndpoint)

	wg := sync.WaitGroup{}
	wg.Add(1)

	go func() {
		httpRest := api.Rest{
			Logger:       logger,
			Port:         envConfig.HTTPPort,
			Service:      svc,
			PinValidator: pinValidator,
		}
		httpRest.Serve()
	}()

	wg.Wait()
}
