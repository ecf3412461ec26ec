//go:build e2e

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

package e2e

import (
	"bytes"
	"context"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/suite"
	"linkguard/app"
	"linkguard/pkg/awsutils"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	awssqs "github.com/aws/aws-sdk-go-v2/service/sqs"

	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/gofiber/fiber/v2"
	"linkguard/common"
)

const (
	baseURL          = "http://localhost:8005"
	mockAWSEndpoint  = "http://localhost:4566"
	mockCache        = "localhost:6379"
	denylistRedisKey = "linkguard:denylist"
	deniedURL        = "https://phishing.example.test/login"
)

type E2E struct {
	suite.Suite
	awsStack   *dockertest.Resource
	redisStack *dockertest.Resource

	bucketName  string
	queueURL    string
	auditPath   string
	sqsClient   *awssqs.Client
	s3Client    *awss3.Client
	redisClient *awsutils.Elasticache
	stopApp     context.CancelFunc
}

func TestE2ESuite(t *testing.T) {
	suite.Run(t, new(E2E))
}

func (suite *E2E) SetupSuite() {
	suite.prepareEnvironmentVariables()
	ctx := context.Background()

	pool, err := dockertest.NewPool("")
	suite.Require().NoError(err)

	awsStackConfig := &dockertest.RunOptions{
		Repository:   "localstack/localstack",
		Tag:          "1.0.4",
		Env:          []string{"SERVICES=sqs,s3"},
		ExposedPorts: []string{"4566"},
		PortBindings: map[docker.Port][]docker.PortBinding{
			"4566": {{HostIP: "0.0.0.0", HostPort: "4566"}},
		},
	}

	awsStack, err := pool.RunWithOptions(awsStackConfig)
	suite.Require().NoError(err)
	suite.awsStack = awsStack

	redisStackConfig := &dockertest.RunOptions{
		Repository:   "redis",
		Tag:          "6",
		ExposedPorts: []string{"6379"},
		PortBindings: map[docker.Port][]docker.PortBinding{
			"6379": {{HostIP: "0.0.0.0", HostPort: "6379"}},
		},
	}

	redisStack, err := pool.RunWithOptions(redisStackConfig)
	suite.Require().NoError(err)
	suite.redisStack = redisStack

	go common.RedirectContainerOutput(ctx, pool, redisStack.Container.ID)
	go common.RedirectContainerOutput(ctx, pool, awsStack.Container.ID)

	// Check redis is running
	suite.redisClient = &awsutils.Elasticache{}
	suite.redisClient.InitRedis(mockCache, "", false)
	suite.Require().Eventually(func() bool {
		return suite.redisClient.Ping(ctx) == nil
	}, 1*time.Minute, 5*time.Second)

	suite.Require().NoError(suite.redisClient.AddMembers(ctx, denylistRedisKey, []string{deniedURL}))

	suite.setEnvironmentVariable("AWS_RESOLVER", mockAWSEndpoint)
	customResolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			PartitionID:   "aws",
			URL:           mockAWSEndpoint,
			SigningRegion: region,
		}, nil
	})

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion("us-east-1"),
		awsconfig.WithEndpointResolverWithOptions(customResolver),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("key", "secret", "")),
	)
	suite.Require().NoError(err)

	suite.s3Client = awss3.NewFromConfig(awsCfg, func(o *awss3.Options) { o.UsePathStyle = true })
	suite.sqsClient = awssqs.NewFromConfig(awsCfg)

	// If we can list buckets, then S3 is ready
	suite.Require().Eventually(func() bool {
		_, err = suite.s3Client.ListBuckets(ctx, &awss3.ListBucketsInput{})
		log.Printf("s3: err: %v\n", err)
		return err == nil
	}, 1*time.Minute, 10*time.Second)

	// If we can list queues, then SQS is ready
	suite.Require().Eventually(func() bool {
		_, listErr := suite.sqsClient.ListQueues(ctx, &awssqs.ListQueuesInput{})
		log.Printf("sqs: err: %v\n", listErr)
		return listErr == nil
	}, 1*time.Minute, 10*time.Second)

	suite.bucketName = "linkguard-denylists"
	_, err = suite.s3Client.CreateBucket(ctx, &awss3.CreateBucketInput{Bucket: aws.String(suite.bucketName)})
	suite.Require().NoError(err)

	queue, err := suite.sqsClient.CreateQueue(ctx, &awssqs.CreateQueueInput{QueueName: aws.String("linkguard-urls")})
	suite.Require().NoError(err)
	suite.queueURL = *queue.QueueUrl
	suite.setEnvironmentVariable("AWS_QUEUE", suite.queueURL)

	appCtx, cancel := context.WithCancel(context.Background())
	suite.stopApp = cancel

	go func() {
		if err := app.Start(appCtx); err != nil {
			log.Printf("app stopped: %v", err)
		}
	}()

	suite.Require().Eventually(func() bool {
		resp, err := http.Get(baseURL + "/healthcheck/readiness")
		if err != nil {
			return false
		}
		defer resp.Body.Close()

		return resp.StatusCode == fiber.StatusOK
	}, time.Minute, 5*time.Second)
}

func (suite *E2E) TearDownSuite() {
	log.Println("finishing e2e tests")

	if suite.stopApp != nil {
		suite.stopApp()
	}

	suite.teardownContainers()
}

func (suite *E2E) teardownContainers() {
	if suite.awsStack != nil {
		suite.Assert().NoError(suite.awsStack.Close())
	}
	if suite.redisClient != nil {
		suite.Assert().NoError(suite.redisClient.Close())
	}

	if suite.redisStack != nil {
		suite.Assert().NoError(suite.redisStack.Close())
	}
}

func (suite *E2E) uploadCompressedDenylist(ctx context.Context, key string, entries []string) {
	var compressed bytes.Buffer

	writer := lz4.NewWriter(&compressed)
	_, err := writer.Write([]byte(strings.Join(entries, "\n")))
	suite.Require().NoError(err)
	suite.Require().NoError(writer.Close())

	_, err = suite.s3Client.PutObject(ctx, &awss3.PutObjectInput{
		Bucket: aws.String(suite.bucketName),
		Key:    aws.String(key),
		Body:   bytes.NewReader(compressed.Bytes()),
	})
	suite.Require().NoError(err)
}

func (suite *E2E) auditLogContains(text string) bool {
	data, err := os.ReadFile(suite.auditPath)
	if err != nil {
		return false
	}

	return strings.Contains(string(data), text)
}

func (suite *E2E) setEnvironmentVariable(key, value string) {
	suite.Require().NoError(os.Setenv(key, value))
}

func (suite *E2E) prepareEnvironmentVariables() {
	common.ChangePathForTesting(suite.T())
	suite.auditPath = filepath.Join(suite.T().TempDir(), "log", "data_url.txt")

	suite.setEnvironmentVariable("CONFIG_DIR", "e2e/")
	suite.setEnvironmentVariable("AUDIT_PATH", suite.auditPath)
	suite.setEnvironmentVariable("AWS_ACCESS_KEY_ID", "key")
	suite.setEnvironmentVariable("AWS_SECRET_ACCESS_KEY", "secret")
}
