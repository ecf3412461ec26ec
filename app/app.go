/*
 *    Copyright 2023 iFood
 *
 *    Licensed under the Apache License, Version 2.0 (the "License");
 *    you may not use this file except in compliance with the License.
 *    You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 *    Unless required by applicable law or agreed to in writing, software
 *    distributed under the License is distributed on an "AS IS" BASIS,
 *    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *    See the License for the specific language governing permissions and
 *    limitations under the License.
 */

package app

import (
	"context"
	"fmt"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/spf13/afero"
	"github.com/uber-go/tally/v4"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"
	"gopkg.in/DataDog/dd-trace-go.v1/profiler"
	"io"
	adaptersin "linkguard/adapters/in"
	adaptersout "linkguard/adapters/out"
	"linkguard/config"
	"linkguard/domain/entities"
	portsout "linkguard/domain/ports/out"
	"linkguard/domain/services/audit"
	"linkguard/domain/services/denylist"
	"linkguard/domain/services/notification"
	"linkguard/domain/services/scan"
	"linkguard/domain/services/stages"
	"linkguard/domain/services/verdict"
	lghttp "linkguard/http"
	"linkguard/logging"
	"linkguard/metrics"
	"linkguard/pkg/awsutils"
	"net/http"
	"strings"
	"time"
)

const notificationWorkers = 1

//nolint:cyclop
func Start(ctx context.Context) error {
	appConfig, err := config.LoadConfig()
	if err != nil {
		return err
	}

	if appConfig.Scanner.Tracing {
		// Enable Datadog tracer
		tracer.Start()
		defer tracer.Stop()

		// Enable Datadog Profiler
		if err = profiler.Start(); err != nil {
			return err
		}
		defer profiler.Stop()
	}

	logger, err := logging.NewZapLogger(appConfig.Scanner.DebugLog)
	if err != nil {
		return err
	}

	var metricsHandler http.Handler
	var metricsScope tally.Scope
	var metricsClose io.Closer

	if appConfig.HTTPServer.Metrics {
		metricsScope, metricsHandler, metricsClose = metrics.NewPrometheusScope()
		defer metricsClose.Close()
	} else {
		metricsScope, metricsHandler, _ = metrics.NewNoopScope()
	}

	clients := awsutils.NewClients(appConfig.Aws.Region, appConfig.Aws.Resolver)
	awsSession, err := clients.Session()

	if err != nil {
		return fmt.Errorf("failed to initialize aws client. Error: %s, Region: %s, Resolver: %s", err, appConfig.Aws.Region, appConfig.Aws.Resolver)
	}

	policy, err := entities.ParseAggregationPolicy(appConfig.Scanner.Policy)
	if err != nil {
		return err
	}

	// Denylist
	redisSource := adaptersout.NewRedisDenylistSource(appConfig.Redis.URL, appConfig.Redis.Password, appConfig.Redis.UseTLS, appConfig.Denylist.RedisKey)
	source := denylistSource(appConfig, awsSession, redisSource)
	store := denylist.NewStore(source, logging.Component(logger, "denylist"), metricsScope)

	if err := store.Load(ctx); err != nil {
		logger.Errorw("Starting with an empty denylist", "error", err, "source", source.Name())
	}

	store.Run(ctx, time.Duration(appConfig.Denylist.ReloadInterval)*time.Second)

	// Reputation sources
	vtConfig := appConfig.Scanner.VirusTotal
	virusTotal := adaptersout.NewVirusTotalScanner(vtConfig.APIKey, vtConfig.BaseURL, time.Duration(vtConfig.Timeout)*time.Millisecond)
	remoteScanner := scan.NewRemoteScanner(virusTotal, vtConfig.MaxAttempts, time.Duration(vtConfig.PollInterval)*time.Millisecond,
		logging.Component(logger, "virustotal"), metricsScope)

	gsbConfig := appConfig.Scanner.SafeBrowsing
	safeBrowsing := adaptersout.NewSafeBrowsingClient(gsbConfig.APIKey, gsbConfig.BaseURL, gsbConfig.ClientVersion, time.Duration(gsbConfig.Timeout)*time.Millisecond)

	if !virusTotal.IsAvailable() {
		logger.Infow("No VirusTotal API key configured, scans will report the source as unavailable")
	}

	if !safeBrowsing.IsAvailable() {
		logger.Infow("No Google Safe Browsing API key configured, lookups will report the source as unavailable")
	}

	// Audit
	auditLogger := audit.NewLogger(adaptersout.NewAuditFileWriter(afero.NewOsFs(), appConfig.Audit.Path), logging.Component(logger, "audit"), metricsScope)
	aggregator := verdict.NewAggregator(store, remoteScanner, safeBrowsing, auditLogger, policy, logging.Component(logger, "aggregator"), metricsScope)

	// Notifications
	smsViewer := adaptersout.NewSMSViewer(awsSession, appConfig.Notification.Phones)
	slackViewer := adaptersout.NewSlackViewer(appConfig.Notification.Slack.Webhook, appConfig.Notification.Slack.ChannelID)
	alertService := notification.NewAlertService([]portsout.Viewer{slackViewer, smsViewer}, logger)
	verdictStatistics := notification.NewVerdictStatistics(logger)
	notificationHandler := notification.NewNotificationHandler([]notification.Job{alertService, verdictStatistics}, logging.Component(logger, "notification"))

	// Stages initialization
	backgroundChannel := make(chan *entities.BackgroundCheck, appConfig.Audit.QueueSize)
	backgroundStage := stages.NewStage[entities.BackgroundCheck, entities.Verdict](verdict.NewBackgroundHandler(aggregator), backgroundChannel,
		appConfig.Audit.Workers, logger, metricsScope)
	notificationStage := stages.NewStage[entities.Verdict, entities.Empty](notificationHandler, backgroundStage.Output(), notificationWorkers,
		logger, metricsScope)

	aggregator.UseBackgroundQueue(backgroundStage)
	aggregator.UseNotificationQueue(notificationStage)

	backgroundStage.Process(ctx)
	notificationStage.Process(ctx)
	notificationHandler.HandleAsync(ctx, time.Duration(appConfig.Notification.UpdateInterval)*time.Second)

	// Controllers
	sqsService, err := clients.SQS()
	if err != nil {
		return fmt.Errorf("failed to initialize sqs client. %w", err)
	}

	queueController := adaptersin.NewQueueController(appConfig.Aws.Queue, aggregator, sqsService, metricsScope, logging.Component(logger, "queue"))
	go queueController.AsyncScan(ctx)

	scanController := adaptersin.NewScanController(aggregator, logger)
	messageController := adaptersin.NewMessageController(aggregator, logger)
	visitController := adaptersin.NewVisitController(aggregator, logger)
	denylistController := adaptersin.NewDenylistController(store, logger)

	fiberConfig := lghttp.FiberConfig{
		MaxRequestSize:    appConfig.HTTPServer.MaxRequestSize,
		AuthorizationKeys: appConfig.HTTPServer.AuthorizationKeys,
		AllowOrigins:      appConfig.HTTPServer.AllowOrigins,
		Profiler:          appConfig.HTTPServer.Profiler,
		Swagger:           appConfig.HTTPServer.Swagger,
		Metrics:           adaptor.HTTPHandler(metricsHandler),
		RequestLogger: func(c *fiber.Ctx) error {
			err := c.Next()
			// Prevent generating lots of requests because of healthcheck
			if !strings.HasPrefix(c.Path(), "/healthcheck/") && !strings.HasPrefix(c.Path(), "/metrics") {
				logger.Infow("Received webapi request", "user", c.Locals("user"), "origin", c.Get(fiber.HeaderOrigin),
					"ip", c.IP(), "method", c.Method(), "path", c.Path(), "response_status", c.Response().StatusCode())
			}
			return err
		},
		Readiness: func(c *fiber.Ctx) error {
			if appConfig.Aws.Queue != "" {
				req, err := http.NewRequestWithContext(c.Context(), "GET", appConfig.Aws.Queue, http.NoBody)
				if err != nil {
					logger.Errorw("Failed to create SQS request in readiness.", "error", err)
					return c.Status(fiber.StatusServiceUnavailable).SendString(fmt.Sprintf("Failed to create request %s", err))
				}

				resp, err := http.DefaultClient.Do(req)
				if err != nil {
					logger.Errorw("Failed to connect to the SQS in readiness.", "error", err)
					return c.Status(fiber.StatusServiceUnavailable).SendString(fmt.Sprintf("SQS not connectable. %s", err))
				}
				defer resp.Body.Close()
			}

			if appConfig.Denylist.Source == config.DenylistSourceRedis {
				if err := redisSource.Ping(c.Context()); err != nil {
					logger.Errorw("Failed to connect to the cache.", "error", err)
					return c.Status(fiber.StatusServiceUnavailable).SendString(fmt.Sprintf("Elasticache not connectable. %s", err))
				}
			}

			return c.SendStatus(fiber.StatusOK)
		},
		Liveness: func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusOK)
		},
		Handlers: []lghttp.Handler{
			{HTTPMethod: "POST", Path: "/check-url", HandlerFunc: scanController.CheckURL},
			{HTTPMethod: "POST", Path: "/messages", HandlerFunc: messageController.HandleMessage},
			{HTTPMethod: "POST", Path: "/visits", HandlerFunc: visitController.RegisterVisit},
			{HTTPMethod: "POST", Path: "/denylist/reload", HandlerFunc: denylistController.Reload},
		},
	}

	app, err := lghttp.CreateFiberApp(fiberConfig, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize fiber framework. Error: %s", err)
	}

	go func() {
		<-ctx.Done()
		if err := app.Shutdown(); err != nil {
			logger.Errorw("Failed to shutdown http server", "error", err)
		}
	}()

	return app.Listen(fmt.Sprintf(":%d", appConfig.HTTPServer.Port))
}

func denylistSource(appConfig config.AppConfig, awsSession *session.Session, redisSource *adaptersout.RedisDenylistSource) portsout.DenylistSource {
	switch appConfig.Denylist.Source {
	case config.DenylistSourceS3:
		return adaptersout.NewS3DenylistSource(awsSession, nil, appConfig.Denylist.Bucket, appConfig.Denylist.Key)
	case config.DenylistSourceRedis:
		return redisSource
	default:
		return adaptersout.NewFileDenylistSource(afero.NewOsFs(), appConfig.Denylist.Path)
	}
}
