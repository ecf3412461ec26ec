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

package awsutils

import (
	"github.com/aws/aws-sdk-go/aws/endpoints"
	"net/http"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
)

const (
	maxIdleConnections     = 100
	idleConnectionsTimeout = 90
	maxIdleConnsPerHost    = 50
	maxConnsPerHost        = 100
)

// Clients lazily builds one AWS session and the service clients derived from it. The endpoint
// override points every service at a local emulator such as localstack.
type Clients struct {
	region   string
	endpoint string

	mu      sync.Mutex
	session *session.Session
	sqs     *SQS
}

func NewClients(region, endpoint string) *Clients {
	return &Clients{region: region, endpoint: endpoint}
}

func (c *Clients) Session() (*session.Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.getSession()
}

// SQS returns the queue client bound to the shared session.
func (c *Clients) SQS() (*SQS, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sqs != nil {
		return c.sqs, nil
	}

	awsSession, err := c.getSession()
	if err != nil {
		return nil, err
	}

	c.sqs = &SQS{}
	c.sqs.Init(awsSession, nil)

	return c.sqs, nil
}

func (c *Clients) getSession() (*session.Session, error) {
	if c.session != nil {
		return c.session, nil
	}

	transport := http.Transport{
		MaxIdleConns:        maxIdleConnections,
		IdleConnTimeout:     idleConnectionsTimeout * time.Second,
		MaxIdleConnsPerHost: maxIdleConnsPerHost,
		MaxConnsPerHost:     maxConnsPerHost,
	}

	config := *aws.NewConfig().WithRegion(c.region).WithS3ForcePathStyle(true).WithHTTPClient(&http.Client{
		Transport: &transport}).WithDisableRestProtocolURICleaning(true)

	if c.endpoint != "" {
		endpoint := c.endpoint
		resolverFn := func(service, region string, optFns ...func(*endpoints.Options)) (endpoints.ResolvedEndpoint, error) {
			return endpoints.ResolvedEndpoint{
				PartitionID:   "aws",
				URL:           endpoint,
				SigningRegion: region,
			}, nil
		}
		config.WithEndpointResolver(endpoints.ResolverFunc(resolverFn))
	}

	awsSession, err := session.NewSessionWithOptions(session.Options{
		Config:            config,
		SharedConfigState: session.SharedConfigEnable,
	})
	if err != nil {
		return nil, err
	}

	c.session = awsSession

	return c.session, nil
}
