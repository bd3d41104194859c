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

package core

const (
	// LogFieldModule is the log field for the module name.
	LogFieldModule = "module"

	// LogFieldStore is the log field key for the name of a session store managed by the storage module.
	LogFieldStore = "store"

	// LogFieldContainerID is the log field key for the ID of a container session.
	LogFieldContainerID = "containerID"
	// LogFieldContainerType is the log field key for the type (ASIC or HASHCODE) of a container session.
	LogFieldContainerType = "containerType"
	// LogFieldSignatureID is the log field key for the ID of a signature sub-session.
	LogFieldSignatureID = "signatureID"
	// LogFieldCertificateID is the log field key for the ID of a Smart-ID certificate choice sub-session.
	LogFieldCertificateID = "certificateID"
	// LogFieldSigningType is the log field key for the signing type (REMOTE, MOBILE_ID, SMART_ID).
	LogFieldSigningType = "signingType"
	// LogFieldProviderSession is the log field key for the session code issued by a Mobile-ID or Smart-ID provider.
	LogFieldProviderSession = "providerSession"
	// LogFieldSessionStatus is the log field key for the status of a sub-session.
	LogFieldSessionStatus = "sessionStatus"

	// LogFieldServiceName is the log field key for the name of the service on whose behalf a session is handled.
	LogFieldServiceName = "serviceName"
	// LogFieldServiceUUID is the log field key for the UUID of the service on whose behalf a session is handled.
	LogFieldServiceUUID = "serviceUUID"

	// LogFieldAuditActor is the log field key for the actor of an audit event.
	LogFieldAuditActor = "actor"
	// LogFieldAuditEvent is the log field key for the name of an audit event.
	LogFieldAuditEvent = "event"
)
