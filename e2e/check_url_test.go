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
	"context"
	"encoding/json"
	"fmt"
	"github.com/aws/aws-sdk-go-v2/aws"
	"io"
	adapterentities "linkguard/adapters/entities"
	adaptersout "linkguard/adapters/out"
	"linkguard/domain/entities"
	"linkguard/domain/services/denylist"
	"linkguard/logging"
	"linkguard/pkg/awsutils"
	"net/http"
	"strings"
	"time"

	awssqs "github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/uber-go/tally/v4"
)

func (suite *E2E) post(path, body string) (int, []byte) {
	response, err := http.Post(baseURL+path, "application/json", strings.NewReader(body))
	suite.Require().NoError(err)
	defer response.Body.Close()

	data, err := io.ReadAll(response.Body)
	suite.Require().NoError(err)

	return response.StatusCode, data
}

func (suite *E2E) TestCheckDenylistedURL() {
	status, body := suite.post("/api/check-url", fmt.Sprintf(`{"url":%q}`, deniedURL))
	suite.Require().Equal(http.StatusOK, status)

	var verdict entities.Verdict
	suite.Require().NoError(json.Unmarshal(body, &verdict))

	suite.Assert().True(verdict.IsPoisonedLocally)
	suite.Assert().Equal(entities.LocalDenylistMessage, verdict.LocalMessage)
	// No API keys are configured, so both remote sources report themselves unavailable.
	suite.Require().NotNil(verdict.VirusTotal)
	suite.Assert().NotEmpty(verdict.VirusTotal.Error)
	suite.Require().NotNil(verdict.GoogleSafeBrowse)
	suite.Assert().NotEmpty(verdict.GoogleSafeBrowse.Error)

	suite.Assert().Eventually(func() bool {
		return suite.auditLogContains(fmt.Sprintf("URL: %q", deniedURL))
	}, 10*time.Second, 500*time.Millisecond)
}

func (suite *E2E) TestCheckRequiresURL() {
	status, body := suite.post("/api/check-url", `{}`)

	suite.Assert().Equal(http.StatusBadRequest, status)
	suite.Assert().JSONEq(`{"error":"URL is required."}`, string(body))
}

func (suite *E2E) TestExtensionMessage() {
	status, body := suite.post("/api/messages", `{"type":"scanUrl","url":"example.org"}`)
	suite.Require().Equal(http.StatusOK, status)

	var response adapterentities.MessageResponse
	suite.Require().NoError(json.Unmarshal(body, &response))

	suite.Assert().Equal("https://example.org", response.NormalizedURL)
	suite.Assert().Equal(adapterentities.BadgeSafe, response.Badges.Local.State)
	suite.Assert().Equal(adapterentities.BadgeError, response.Badges.VirusTotal.State)
}

func (suite *E2E) TestReloadPicksUpNewEntries() {
	ctx := context.Background()
	added := "https://fresh-phish.example.test/"

	suite.Require().NoError(suite.redisClient.AddMembers(ctx, denylistRedisKey, []string{added}))

	status, body := suite.post("/api/denylist/reload", "")
	suite.Require().Equal(http.StatusOK, status)

	var reload adapterentities.ReloadResponse
	suite.Require().NoError(json.Unmarshal(body, &reload))
	suite.Assert().GreaterOrEqual(reload.Entries, 2)

	status, body = suite.post("/api/check-url", fmt.Sprintf(`{"url":%q}`, added))
	suite.Require().Equal(http.StatusOK, status)

	var verdict entities.Verdict
	suite.Require().NoError(json.Unmarshal(body, &verdict))
	suite.Assert().True(verdict.IsPoisonedLocally)
}

func (suite *E2E) TestVisitIsAudited() {
	visited := "https://visited.example.test/page"

	status, body := suite.post("/api/visits", fmt.Sprintf(`{"url":%q}`, visited))
	suite.Require().Equal(http.StatusAccepted, status)

	var response adapterentities.VisitResponse
	suite.Require().NoError(json.Unmarshal(body, &response))
	suite.Assert().Equal("URL received", response.Message)
	suite.Assert().Equal(visited, response.ReceivedURL)

	suite.Assert().Eventually(func() bool {
		return suite.auditLogContains(fmt.Sprintf("URL: %q", visited))
	}, 30*time.Second, time.Second)
}

func (suite *E2E) TestQueuedURLIsAudited() {
	queued := "https://queued.example.test/"

	_, err := suite.sqsClient.SendMessage(context.Background(), &awssqs.SendMessageInput{
		QueueUrl:    aws.String(suite.queueURL),
		MessageBody: aws.String(fmt.Sprintf(`{"type":"scanUrl","url":%q}`, queued)),
	})
	suite.Require().NoError(err)

	suite.Assert().Eventually(func() bool {
		return suite.auditLogContains(fmt.Sprintf("URL: %q", queued))
	}, time.Minute, 2*time.Second)
}

func (suite *E2E) TestS3DenylistSource() {
	ctx := context.Background()
	suite.uploadCompressedDenylist(ctx, "denylist.txt.lz4", []string{"https://s3-listed.example.test/", "", "  https://padded.example.test/  "})

	awsSession, err := awsutils.NewClients("us-east-1", mockAWSEndpoint).Session()
	suite.Require().NoError(err)

	source := adaptersout.NewS3DenylistSource(awsSession, nil, suite.bucketName, "denylist.txt.lz4")
	store := denylist.NewStore(source, logging.NewDiscardLog(), tally.NoopScope)

	suite.Require().NoError(store.Load(ctx))
	suite.Assert().Equal(2, store.Size())
	suite.Assert().True(store.Contains("https://s3-listed.example.test/"))
	suite.Assert().True(store.Contains("https://padded.example.test/"))
}
