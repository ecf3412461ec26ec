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

package in

import (
	"context"
	"errors"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	adapterentities "linkguard/adapters/entities"
	"linkguard/domain/entities"
	"linkguard/domain/services/verdict"
	"linkguard/logging"
)

const urlRequiredMessage = "URL is required."

type ScanController struct {
	validate *validator.Validate
	checker  verdict.Checker
	logger   logging.Logger
}

func NewScanController(checker verdict.Checker, logger logging.Logger) ScanController {
	return ScanController{checker: checker, logger: logger, validate: validator.New()}
}

// CheckURL
// @Summary		Checks a URL against the local denylist, VirusTotal and Google Safe Browsing
// @Tags		urls
// @Accept		json
// @Produce		json
// @Param		request	body	adapterentities.CheckURLRequest	true	"URL to be checked"
// @Success		200 {object} entities.Verdict
// @Failure		400 {object} adapterentities.ErrorResponse
// @Failure		500 {object} adapterentities.ErrorResponse
// @Security	ApiKey
// @Router      /check-url [post]
func (s *ScanController) CheckURL(c *fiber.Ctx) error {
	request := &adapterentities.CheckURLRequest{}

	if err := c.BodyParser(request); err != nil {
		s.logger.Errorw("Could not parse request", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(adapterentities.ErrorResponse{Error: urlRequiredMessage})
	}

	if err := s.validate.Struct(request); err != nil {
		s.logger.Debugw("Some field is missing", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(adapterentities.ErrorResponse{Error: urlRequiredMessage})
	}

	s.logger.Infow("Received request for URL", "url", request.URL)

	// The check runs to completion even when the client goes away.
	result, err := s.checker.Check(context.Background(), request.URL)
	if errors.Is(err, entities.ErrValidation) {
		return c.Status(fiber.StatusBadRequest).JSON(adapterentities.ErrorResponse{Error: urlRequiredMessage})
	}

	if err != nil {
		s.logger.Errorw("Unexpected error while checking URL", "error", err, "url", request.URL)
		return c.Status(fiber.StatusInternalServerError).JSON(adapterentities.ErrorResponse{
			Error:   entities.ErrAggregatorFault.Error() + ".",
			Details: err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(result)
}
