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

package common

import (
	"context"
	"encoding/json"
	"github.com/gofiber/fiber/v2"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"io"
	lghttp "linkguard/http"
	"linkguard/logging"
	"log"
	"net/http/httptest"
	"os"
	"path"
	"runtime"
	"strings"
	"testing"
)

const testRequestLimit = 1024 * 1024

func ChangePathForTesting(t *testing.T) {
	t.Helper()

	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		panic("could not get caller")
	}

	dir := path.Join(path.Dir(filename), "..")
	err := os.Chdir(dir)

	if err != nil {
		panic(err)
	}
}

func LoadFile(t *testing.T, filename string) []byte {
	ChangePathForTesting(t)
	baseDir := "resources/testfiles/"
	src, _ := os.ReadFile(baseDir + filename)

	return src
}

func GetObjectFromJSON[T any](t *testing.T, data []byte) T {
	t.Helper()

	var objects T
	err := json.Unmarshal(data, &objects)

	if err != nil {
		panic(err)
	}

	return objects
}

func GetObjectsFromJSONFile[T any](t *testing.T, filename string) T {
	t.Helper()

	data := LoadFile(t, filename)

	return GetObjectFromJSON[T](t, data)
}

func GetObjectJSON(t *testing.T, data interface{}) string {
	t.Helper()

	jsonData, err := json.Marshal(data)
	if err != nil {
		panic(err)
	}

	return string(jsonData)
}

func RedirectContainerOutput(ctx context.Context, pool *dockertest.Pool, containerID string) {
	err := pool.Client.Logs(docker.LogsOptions{
		Context:      ctx,
		Container:    containerID,
		OutputStream: os.Stdout,
		Follow:       true,
		Stdout:       true,
		Stderr:       true,
		RawTerminal:  true,
		Timestamps:   true,
	})
	if err != nil {
		log.Println(err)
	}
}

func CreateFiberAppForTest(handlers []lghttp.Handler) *fiber.App {
	return CreateFiberAppWithKeysForTest(handlers, nil)
}

func CreateFiberAppWithKeysForTest(handlers []lghttp.Handler, authorizationKeys []string) *fiber.App {
	fiberConfig := lghttp.FiberConfig{
		MaxRequestSize:    testRequestLimit,
		AuthorizationKeys: authorizationKeys,
		Profiler:          false,
		RequestLogger: func(c *fiber.Ctx) error {
			return c.Next()
		},
		Readiness: func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusOK)
		},
		Liveness: func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusOK)
		},
		Metrics: func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusOK)
		},
		Handlers: handlers,
	}
	app, err := lghttp.CreateFiberApp(fiberConfig, logging.NewDiscardLog())

	if err != nil {
		panic(err)
	}

	return app
}

// SendJSON posts body to the test app and returns the status code with the raw response body.
func SendJSON(t *testing.T, app *fiber.App, method, target, body string) (int, []byte) {
	t.Helper()

	request := httptest.NewRequest(method, target, strings.NewReader(body))
	request.Header.Add("Content-type", "application/json")

	httpResponse, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("failed to send request. %v", err)
	}
	defer httpResponse.Body.Close()

	data, err := io.ReadAll(httpResponse.Body)
	if err != nil {
		t.Fatalf("failed to read response. %v", err)
	}

	return httpResponse.StatusCode, data
}
