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

// MessageController answers the extension popup. Backend faults are reported inside the body so the popup
// can still render its badges.
type MessageController struct {
	validate *validator.Validate
	checker  verdict.Checker
	logger   logging.Logger
}

func NewMessageController(checker verdict.Checker, logger logging.Logger) MessageController {
	return MessageController{checker: checker, logger: logger, validate: validator.New()}
}

// HandleMessage
// @Summary		Handles a scanUrl message from the browser extension
// @Tags		extension
// @Accept		json
// @Produce		json
// @Param		request	body	adapterentities.MessageRequest	true	"Extension message"
// @Success		200 {object} adapterentities.MessageResponse
// @Failure		400 {object} adapterentities.ErrorResponse
// @Security	ApiKey
// @Router      /messages [post]
func (m *MessageController) HandleMessage(c *fiber.Ctx) error {
	request := &adapterentities.MessageRequest{}

	if err := c.BodyParser(request); err != nil {
		m.logger.Errorw("Could not parse message", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(adapterentities.ErrorResponse{Error: "invalid message"})
	}

	if err := m.validate.Struct(request); err != nil {
		m.logger.Debugw("Invalid message", "error", err, "type", request.Type)

		message := "Please input URL."
		if request.Type != adapterentities.ScanURLMessageType {
			message = "unsupported message type"
		}

		return c.Status(fiber.StatusBadRequest).JSON(adapterentities.ErrorResponse{Error: message})
	}

	result, err := m.checker.Check(context.Background(), request.URL)
	if errors.Is(err, entities.ErrValidation) {
		return c.Status(fiber.StatusBadRequest).JSON(adapterentities.ErrorResponse{Error: "Please input URL."})
	}

	if err != nil {
		m.logger.Errorw("Unexpected error while checking URL", "error", err, "url", request.URL)

		result = entities.NewVerdict("", request.URL, entities.NormalizeURL(request.URL))
		result.SetBackendError(err)
	}

	return c.Status(fiber.StatusOK).JSON(adapterentities.MapToMessageResponse(result))
}
