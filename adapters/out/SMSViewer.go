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

package out

import (
	"fmt"
	"github.com/aws/aws-sdk-go/aws/session"
	"linkguard/pkg/awsutils"
	"strings"
)

// SMS bodies above this size are split by the carrier, so summaries are cut short.
const maxSMSLength = 480

type SMSViewer struct {
	phones  []string
	session *session.Session
	send    func(phone, message string) error
}

func NewSMSViewer(awsSession *session.Session, phones []string) *SMSViewer {
	viewer := &SMSViewer{session: awsSession, phones: phones}
	viewer.send = func(phone, message string) error {
		return awsutils.SendSMS(viewer.session, nil, phone, message)
	}

	return viewer
}

func (s *SMSViewer) IsAvailable() bool {
	return s.session != nil && len(s.phones) > 0
}

func (s *SMSViewer) SendMessage(message string) error {
	if len(message) > maxSMSLength {
		message = message[:maxSMSLength-3] + "..."
	}

	var errorsList []string
	for _, phone := range s.phones {
		if err := s.send(phone, message); err != nil {
			errorsList = append(errorsList, fmt.Sprintf("%s: %s", phone, err))
		}
	}

	if len(errorsList) > 0 {
		return fmt.Errorf("failed to send sms. %s", strings.Join(errorsList, "\n"))
	}

	return nil
}
