/*
 * Copyright (C) 2024 Nuts community
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 *
 */

package session

import "time"

// ProcessingStatus is the processing state of an asynchronous sub-session, used to decide whether it needs reprocessing.
type ProcessingStatus string

const (
	// Processing means a provider poll is due or in progress.
	Processing ProcessingStatus = "PROCESSING"
	// Exception means the last poll failed. The error is kept in the SessionStatus.
	Exception ProcessingStatus = "EXCEPTION"
	// Result means the sub-session reached a terminal provider state.
	Result ProcessingStatus = "RESULT"
)

// Provider statuses, as returned to clients.
const (
	StatusOutstandingTransaction = "OUTSTANDING_TRANSACTION"
	StatusSignature              = "SIGNATURE"
	StatusCertificate            = "CERTIFICATE"
	StatusExpiredTransaction     = "EXPIRED_TRANSACTION"
	StatusUserCancel             = "USER_CANCEL"
	StatusNotValid               = "NOT_VALID"
	StatusSendingError           = "SENDING_ERROR"
	StatusSimError               = "SIM_ERROR"
	StatusPhoneAbsent            = "PHONE_ABSENT"
	StatusInternalError          = "INTERNAL_ERROR"
	StatusUserSelectedWrongVC    = "USER_SELECTED_WRONG_VC"
	StatusDocumentUnusable       = "DOCUMENT_UNUSABLE"
	StatusNotSupportedByApp      = "NOT_SUPPORTED_BY_APP"
	StatusUserAccountNotFound    = "USER_ACCOUNT_NOT_FOUND"
)

// StatusError is the error of the last failed poll of a sub-session.
type StatusError struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}

// SessionStatus tracks the provider status of an asynchronous sub-session.
// ProcessingTimestamp is updated on every processing status change and is the only input for timeouts.
type SessionStatus struct {
	Status              string           `json:"status,omitempty"`
	Error               *StatusError     `json:"error,omitempty"`
	ProcessingStatus    ProcessingStatus `json:"processingStatus"`
	ProcessingCounter   int              `json:"processingCounter"`
	ProcessingTimestamp time.Time        `json:"processingTimestamp"`
}

// NewSessionStatus returns the status of a sub-session that was just created: PROCESSING without any attempts.
func NewSessionStatus(now time.Time) SessionStatus {
	return SessionStatus{
		Status:              StatusOutstandingTransaction,
		ProcessingStatus:    Processing,
		ProcessingTimestamp: now,
	}
}

// SetProcessingStatus changes the processing status and its timestamp.
// The counter is incremented for every change to PROCESSING or EXCEPTION.
func (s *SessionStatus) SetProcessingStatus(status ProcessingStatus, now time.Time) {
	s.ProcessingStatus = status
	s.ProcessingTimestamp = now
	if status != Result {
		s.ProcessingCounter++
	}
}

// SetOutstanding records that the provider has not finished yet.
func (s *SessionStatus) SetOutstanding(now time.Time) {
	s.Status = StatusOutstandingTransaction
	s.Error = nil
	s.SetProcessingStatus(Processing, now)
}

// SetResult records a terminal provider status.
func (s *SessionStatus) SetResult(status string, now time.Time) {
	s.Status = status
	s.Error = nil
	s.SetProcessingStatus(Result, now)
}

// SetException records a failed poll. The provider status is kept, so clients keep seeing the last known status.
func (s *SessionStatus) SetException(code string, message string, now time.Time) {
	s.Error = &StatusError{Code: code, Message: message}
	s.SetProcessingStatus(Exception, now)
}

// IsFinished returns true if the sub-session reached a terminal provider state.
func (s SessionStatus) IsFinished() bool {
	return s.ProcessingStatus == Result
}

// Age returns the time elapsed since the last processing status change.
func (s SessionStatus) Age(now time.Time) time.Duration {
	return now.Sub(s.ProcessingTimestamp)
}

// SetFailed records a terminal provider status that is not a success. It is treated as an exception,
// so the status is kept visible to the client and counted against the reprocessing budget.
func (s *SessionStatus) SetFailed(status string, message string, now time.Time) {
	s.Status = status
	s.SetException(status, message, now)
}
