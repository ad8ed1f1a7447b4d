// Copyright 2025 Edgeo SCADA
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package opcua

import (
	"errors"
	"fmt"
)

// StatusCode severity levels.
const (
	StatusSeverityGood      uint32 = 0x00000000
	StatusSeverityUncertain uint32 = 0x40000000
	StatusSeverityBad       uint32 = 0x80000000
	StatusSeverityMask      uint32 = 0xC0000000
)

// OPC UA Status Codes reported by attribute monitoring and the transports
// underneath it.
const (
	StatusGood                                    StatusCode = 0x00000000
	StatusUncertain                               StatusCode = 0x40000000
	StatusBad                                     StatusCode = 0x80000000
	StatusBadUnexpectedError                      StatusCode = 0x80010000
	StatusBadInternalError                        StatusCode = 0x80020000
	StatusBadOutOfMemory                          StatusCode = 0x80030000
	StatusBadResourceUnavailable                  StatusCode = 0x80040000
	StatusBadCommunicationError                   StatusCode = 0x80050000
	StatusBadEncodingError                        StatusCode = 0x80060000
	StatusBadDecodingError                        StatusCode = 0x80070000
	StatusBadEncodingLimitsExceeded               StatusCode = 0x80080000
	StatusBadRequestTooLarge                      StatusCode = 0x80B80000
	StatusBadResponseTooLarge                     StatusCode = 0x80B90000
	StatusBadUnknownResponse                      StatusCode = 0x80090000
	StatusBadTimeout                              StatusCode = 0x800A0000
	StatusBadServiceUnsupported                   StatusCode = 0x800B0000
	StatusBadShutdown                             StatusCode = 0x800C0000
	StatusBadServerNotConnected                   StatusCode = 0x800D0000
	StatusBadServerHalted                         StatusCode = 0x800E0000
	StatusBadNothingToDo                          StatusCode = 0x800F0000
	StatusBadTooManyOperations                    StatusCode = 0x80100000
	StatusBadTooManyMonitoredItems                StatusCode = 0x80DB0000
	StatusBadDataTypeIdUnknown                    StatusCode = 0x80110000
	StatusBadCertificateInvalid                   StatusCode = 0x80120000
	StatusBadSecurityChecksFailed                 StatusCode = 0x80130000
	StatusBadCertificatePolicyCheckFailed         StatusCode = 0x81140000
	StatusBadCertificateTimeInvalid               StatusCode = 0x80140000
	StatusBadCertificateIssuerTimeInvalid         StatusCode = 0x80150000
	StatusBadCertificateHostNameInvalid           StatusCode = 0x80160000
	StatusBadCertificateUriInvalid                StatusCode = 0x80170000
	StatusBadCertificateUseNotAllowed             StatusCode = 0x80180000
	StatusBadCertificateIssuerUseNotAllowed       StatusCode = 0x80190000
	StatusBadCertificateUntrusted                 StatusCode = 0x801A0000
	StatusBadCertificateRevocationUnknown         StatusCode = 0x801B0000
	StatusBadCertificateIssuerRevocationUnknown   StatusCode = 0x801C0000
	StatusBadCertificateRevoked                   StatusCode = 0x801D0000
	StatusBadCertificateIssuerRevoked             StatusCode = 0x801E0000
	StatusBadCertificateChainIncomplete           StatusCode = 0x810D0000
	StatusBadUserAccessDenied                     StatusCode = 0x801F0000
	StatusBadIdentityTokenInvalid                 StatusCode = 0x80200000
	StatusBadIdentityTokenRejected                StatusCode = 0x80210000
	StatusBadSecureChannelIdInvalid               StatusCode = 0x80220000
	StatusBadInvalidTimestamp                     StatusCode = 0x80230000
	StatusBadNonceInvalid                         StatusCode = 0x80240000
	StatusBadSessionIdInvalid                     StatusCode = 0x80250000
	StatusBadSessionClosed                        StatusCode = 0x80260000
	StatusBadSessionNotActivated                  StatusCode = 0x80270000
	StatusBadSubscriptionIdInvalid                StatusCode = 0x80280000
	StatusBadRequestHeaderInvalid                 StatusCode = 0x802A0000
	StatusBadTimestampsToReturnInvalid            StatusCode = 0x802B0000
	StatusBadRequestCancelledByClient             StatusCode = 0x802C0000
	StatusBadTooManyArguments                     StatusCode = 0x80E50000
	StatusBadLicenseExpired                       StatusCode = 0x810E0000
	StatusBadLicenseLimitsExceeded                StatusCode = 0x810F0000
	StatusBadLicenseNotAvailable                  StatusCode = 0x81100000
	StatusGoodSubscriptionTransferred             StatusCode = 0x002D0000
	StatusGoodCompletesAsynchronously             StatusCode = 0x002E0000
	StatusGoodOverload                            StatusCode = 0x002F0000
	StatusGoodClamped                             StatusCode = 0x00300000
	StatusBadNoCommunication                      StatusCode = 0x80310000
	StatusBadWaitingForInitialData                StatusCode = 0x80320000
	StatusBadNodeIdInvalid                        StatusCode = 0x80330000
	StatusBadNodeIdUnknown                        StatusCode = 0x80340000
	StatusBadAttributeIdInvalid                   StatusCode = 0x80350000
	StatusBadIndexRangeInvalid                    StatusCode = 0x80360000
	StatusBadIndexRangeNoData                     StatusCode = 0x80370000
	StatusBadDataEncodingInvalid                  StatusCode = 0x80380000
	StatusBadDataEncodingUnsupported              StatusCode = 0x80390000
	StatusBadNotReadable                          StatusCode = 0x803A0000
	StatusBadNotWritable                          StatusCode = 0x803B0000
	StatusBadOutOfRange                           StatusCode = 0x803C0000
	StatusBadNotSupported                         StatusCode = 0x803D0000
	StatusBadNotFound                             StatusCode = 0x803E0000
	StatusBadObjectDeleted                        StatusCode = 0x803F0000
	StatusBadNotImplemented                       StatusCode = 0x80400000
	StatusBadMonitoringModeInvalid                StatusCode = 0x80410000
	StatusBadMonitoredItemIdInvalid               StatusCode = 0x80420000
	StatusBadMonitoredItemFilterInvalid           StatusCode = 0x80430000
	StatusBadMonitoredItemFilterUnsupported       StatusCode = 0x80440000
	StatusBadFilterNotAllowed                     StatusCode = 0x80450000
	StatusBadStructureMissing                     StatusCode = 0x80460000
	StatusBadEventFilterInvalid                   StatusCode = 0x80470000
	StatusBadContentFilterInvalid                 StatusCode = 0x80480000
	StatusBadFilterOperatorInvalid                StatusCode = 0x80C10000
	StatusBadFilterOperatorUnsupported            StatusCode = 0x80C20000
	StatusBadFilterOperandCountMismatch           StatusCode = 0x80C30000
	StatusBadFilterOperandInvalid                 StatusCode = 0x80490000
	StatusBadFilterElementInvalid                 StatusCode = 0x80C40000
	StatusBadFilterLiteralInvalid                 StatusCode = 0x80C50000
	StatusBadContinuationPointInvalid             StatusCode = 0x804A0000
	StatusBadNoContinuationPoints                 StatusCode = 0x804B0000
	StatusBadReferenceTypeIdInvalid               StatusCode = 0x804C0000
	StatusBadBrowseDirectionInvalid               StatusCode = 0x804D0000
	StatusBadNodeNotInView                        StatusCode = 0x804E0000
	StatusBadNumericOverflow                      StatusCode = 0x81120000
	StatusBadServerUriInvalid                     StatusCode = 0x804F0000
	StatusBadServerNameMissing                    StatusCode = 0x80500000
	StatusBadDiscoveryUrlMissing                  StatusCode = 0x80510000
	StatusBadSempahoreFileMissing                 StatusCode = 0x80520000
	StatusBadRequestTypeInvalid                   StatusCode = 0x80530000
	StatusBadSecurityModeRejected                 StatusCode = 0x80540000
	StatusBadSecurityPolicyRejected               StatusCode = 0x80550000
	StatusBadTooManySessions                      StatusCode = 0x80560000
	StatusBadUserSignatureInvalid                 StatusCode = 0x80570000
	StatusBadApplicationSignatureInvalid          StatusCode = 0x80580000
	StatusBadNoValidCertificates                  StatusCode = 0x80590000
	StatusBadIdentityChangeNotSupported           StatusCode = 0x80C60000
	StatusBadRequestCancelledByRequest            StatusCode = 0x805A0000
	StatusBadParentNodeIdInvalid                  StatusCode = 0x805B0000
	StatusBadReferenceNotAllowed                  StatusCode = 0x805C0000
	StatusBadNodeIdRejected                       StatusCode = 0x805D0000
	StatusBadNodeIdExists                         StatusCode = 0x805E0000
	StatusBadNodeClassInvalid                     StatusCode = 0x805F0000
	StatusBadBrowseNameInvalid                    StatusCode = 0x80600000
	StatusBadBrowseNameDuplicated                 StatusCode = 0x80610000
	StatusBadNodeAttributesInvalid                StatusCode = 0x80620000
	StatusBadTypeDefinitionInvalid                StatusCode = 0x80630000
	StatusBadSourceNodeIdInvalid                  StatusCode = 0x80640000
	StatusBadTargetNodeIdInvalid                  StatusCode = 0x80650000
	StatusBadDuplicateReferenceNotAllowed         StatusCode = 0x80660000
	StatusBadInvalidSelfReference                 StatusCode = 0x80670000
	StatusBadReferenceLocalOnly                   StatusCode = 0x80680000
	StatusBadNoDeleteRights                       StatusCode = 0x80690000
	StatusUncertainReferenceNotDeleted            StatusCode = 0x40BC0000
	StatusBadServerIndexInvalid                   StatusCode = 0x806A0000
	StatusBadViewIdUnknown                        StatusCode = 0x806B0000
	StatusBadViewTimestampInvalid                 StatusCode = 0x80C90000
	StatusBadViewParameterMismatch                StatusCode = 0x80CA0000
	StatusBadViewVersionInvalid                   StatusCode = 0x80CB0000
	StatusUncertainNotAllNodesAvailable           StatusCode = 0x40C00000
	StatusGoodResultsMayBeIncomplete              StatusCode = 0x00BA0000
	StatusBadNotTypeDefinition                    StatusCode = 0x80C80000
	StatusUncertainReferenceOutOfServer           StatusCode = 0x406C0000
	StatusBadTooManyMatches                       StatusCode = 0x806D0000
	StatusBadQueryTooComplex                      StatusCode = 0x806E0000
	StatusBadNoMatch                              StatusCode = 0x806F0000
	StatusBadMaxAgeInvalid                        StatusCode = 0x80700000
	StatusBadSecurityModeInsufficient             StatusCode = 0x80E60000
	StatusBadHistoryOperationInvalid              StatusCode = 0x80710000
	StatusBadHistoryOperationUnsupported          StatusCode = 0x80720000
	StatusBadInvalidTimestampArgument             StatusCode = 0x80BD0000
	StatusBadWriteNotSupported                    StatusCode = 0x80730000
	StatusBadTypeMismatch                         StatusCode = 0x80740000
	StatusBadMethodInvalid                        StatusCode = 0x80750000
	StatusBadArgumentsMissing                     StatusCode = 0x80760000
	StatusBadNotExecutable                        StatusCode = 0x81110000
	StatusBadTooManySubscriptions                 StatusCode = 0x80770000
	StatusBadTooManyPublishRequests               StatusCode = 0x80780000
	StatusBadNoSubscription                       StatusCode = 0x80790000
	StatusBadSequenceNumberUnknown                StatusCode = 0x807A0000
	StatusBadMessageNotAvailable                  StatusCode = 0x807B0000
	StatusBadInsufficientClientProfile            StatusCode = 0x807C0000
	StatusBadStateNotActive                       StatusCode = 0x80BF0000
	StatusBadAlreadyExists                        StatusCode = 0x81150000
	StatusBadTcpServerTooBusy                     StatusCode = 0x807D0000
	StatusBadTcpMessageTypeInvalid                StatusCode = 0x807E0000
	StatusBadTcpSecureChannelUnknown              StatusCode = 0x807F0000
	StatusBadTcpMessageTooLarge                   StatusCode = 0x80800000
	StatusBadTcpNotEnoughResources                StatusCode = 0x80810000
	StatusBadTcpInternalError                     StatusCode = 0x80820000
	StatusBadTcpEndpointUrlInvalid                StatusCode = 0x80830000
	StatusBadRequestInterrupted                   StatusCode = 0x80840000
	StatusBadRequestTimeout                       StatusCode = 0x80850000
	StatusBadSecureChannelClosed                  StatusCode = 0x80860000
	StatusBadSecureChannelTokenUnknown            StatusCode = 0x80870000
	StatusBadSequenceNumberInvalid                StatusCode = 0x80880000
	StatusBadProtocolVersionUnsupported           StatusCode = 0x80BE0000
	StatusBadConfigurationError                   StatusCode = 0x80890000
	StatusBadNotConnected                         StatusCode = 0x808A0000
	StatusBadDeviceFailure                        StatusCode = 0x808B0000
	StatusBadSensorFailure                        StatusCode = 0x808C0000
	StatusBadOutOfService                         StatusCode = 0x808D0000
	StatusBadDeadbandFilterInvalid                StatusCode = 0x808E0000
	StatusUncertainNoCommunicationLastUsableValue StatusCode = 0x408F0000
	StatusUncertainLastUsableValue                StatusCode = 0x40900000
	StatusUncertainSubstituteValue                StatusCode = 0x40910000
	StatusUncertainInitialValue                   StatusCode = 0x40920000
	StatusUncertainSensorNotAccurate              StatusCode = 0x40930000
	StatusUncertainEngineeringUnitsExceeded       StatusCode = 0x40940000
	StatusUncertainSubNormal                      StatusCode = 0x40950000
	StatusGoodLocalOverride                       StatusCode = 0x00960000
	StatusBadRefreshInProgress                    StatusCode = 0x80970000
	StatusBadConditionAlreadyDisabled             StatusCode = 0x80980000
	StatusBadConditionAlreadyEnabled              StatusCode = 0x80CC0000
	StatusBadConditionDisabled                    StatusCode = 0x80990000
	StatusBadEventIdUnknown                       StatusCode = 0x809A0000
	StatusBadEventNotAcknowledgeable              StatusCode = 0x80BB0000
	StatusBadDialogNotActive                      StatusCode = 0x80CD0000
	StatusBadDialogResponseInvalid                StatusCode = 0x80CE0000
	StatusBadConditionBranchAlreadyAcked          StatusCode = 0x80CF0000
	StatusBadConditionBranchAlreadyConfirmed      StatusCode = 0x80D00000
	StatusBadConditionAlreadyShelved              StatusCode = 0x80D10000
	StatusBadConditionNotShelved                  StatusCode = 0x80D20000
	StatusBadShelvingTimeOutOfRange               StatusCode = 0x80D30000
	StatusBadNoData                               StatusCode = 0x809B0000
	StatusBadBoundNotFound                        StatusCode = 0x80D70000
	StatusBadBoundNotSupported                    StatusCode = 0x80D80000
	StatusBadDataLost                             StatusCode = 0x809D0000
	StatusBadDataUnavailable                      StatusCode = 0x809E0000
	StatusBadEntryExists                          StatusCode = 0x809F0000
	StatusBadNoEntryExists                        StatusCode = 0x80A00000
	StatusBadTimestampNotSupported                StatusCode = 0x80A10000
	StatusGoodEntryInserted                       StatusCode = 0x00A20000
	StatusGoodEntryReplaced                       StatusCode = 0x00A30000
	StatusUncertainDataSubNormal                  StatusCode = 0x40A40000
	StatusGoodNoData                              StatusCode = 0x00A50000
	StatusGoodMoreData                            StatusCode = 0x00A60000
	StatusBadAggregateListMismatch                StatusCode = 0x80D40000
	StatusBadAggregateNotSupported                StatusCode = 0x80D50000
	StatusBadAggregateInvalidInputs               StatusCode = 0x80D60000
	StatusBadAggregateConfigurationRejected       StatusCode = 0x80DA0000
	StatusGoodDataIgnored                         StatusCode = 0x00D90000
	StatusBadRequestNotAllowed                    StatusCode = 0x80E40000
	StatusBadRequestNotComplete                   StatusCode = 0x81130000
	StatusGoodEdited                              StatusCode = 0x00DC0000
	StatusGoodPostActionFailed                    StatusCode = 0x00DD0000
	StatusUncertainDominantValueChanged           StatusCode = 0x40DE0000
	StatusGoodDependentValueChanged               StatusCode = 0x00E00000
	StatusBadDominantValueChanged                 StatusCode = 0x80E10000
	StatusUncertainDependentValueChanged          StatusCode = 0x40E20000
	StatusBadDependentValueChanged                StatusCode = 0x80E30000
	StatusGoodCommunicationEvent                  StatusCode = 0x00A70000
	StatusGoodShutdownEvent                       StatusCode = 0x00A80000
	StatusGoodCallAgain                           StatusCode = 0x00A90000
	StatusGoodNonCriticalTimeout                  StatusCode = 0x00AA0000
	StatusBadInvalidArgument                      StatusCode = 0x80AB0000
	StatusBadConnectionRejected                   StatusCode = 0x80AC0000
	StatusBadDisconnect                           StatusCode = 0x80AD0000
	StatusBadConnectionClosed                     StatusCode = 0x80AE0000
	StatusBadInvalidState                         StatusCode = 0x80AF0000
	StatusBadEndOfStream                          StatusCode = 0x80B00000
	StatusBadNoDataAvailable                      StatusCode = 0x80B10000
	StatusBadWaitingForResponse                   StatusCode = 0x80B20000
	StatusBadOperationAbandoned                   StatusCode = 0x80B30000
	StatusBadExpectedStreamToBlock                StatusCode = 0x80B40000
	StatusBadWouldBlock                           StatusCode = 0x80B50000
	StatusBadSyntaxError                          StatusCode = 0x80B60000
	StatusBadMaxConnectionsReached                StatusCode = 0x80B70000
)

// statusCodeInfo contains name and description for a status code.
type statusCodeInfo struct {
	name        string
	description string
}

// statusCodeMap maps status codes to their info.
var statusCodeMap = map[StatusCode]statusCodeInfo{
	StatusGood:                                    {"Good", "The operation completed successfully"},
	StatusUncertain:                               {"Uncertain", "The value is uncertain"},
	StatusBad:                                     {"Bad", "The operation failed"},
	StatusBadUnexpectedError:                      {"BadUnexpectedError", "An unexpected error occurred"},
	StatusBadInternalError:                        {"BadInternalError", "An internal error occurred"},
	StatusBadOutOfMemory:                          {"BadOutOfMemory", "Not enough memory to complete the operation"},
	StatusBadResourceUnavailable:                  {"BadResourceUnavailable", "An operating system resource is not available"},
	StatusBadCommunicationError:                   {"BadCommunicationError", "A low level communication error occurred"},
	StatusBadEncodingError:                        {"BadEncodingError", "Encoding halted because of invalid data"},
	StatusBadDecodingError:                        {"BadDecodingError", "Decoding halted because of invalid data"},
	StatusBadEncodingLimitsExceeded:               {"BadEncodingLimitsExceeded", "The message encoding/decoding limits have been exceeded"},
	StatusBadRequestTooLarge:                      {"BadRequestTooLarge", "The request message size exceeds limits"},
	StatusBadResponseTooLarge:                     {"BadResponseTooLarge", "The response message size exceeds limits"},
	StatusBadUnknownResponse:                      {"BadUnknownResponse", "An unrecognized response was received from the server"},
	StatusBadTimeout:                              {"BadTimeout", "The operation timed out"},
	StatusBadServiceUnsupported:                   {"BadServiceUnsupported", "The server does not support the requested service"},
	StatusBadShutdown:                             {"BadShutdown", "The operation was cancelled because the application is shutting down"},
	StatusBadServerNotConnected:                   {"BadServerNotConnected", "The operation could not complete because the client is not connected to the server"},
	StatusBadServerHalted:                         {"BadServerHalted", "The server has stopped and cannot process any requests"},
	StatusBadNothingToDo:                          {"BadNothingToDo", "No processing could be done because there was nothing to do"},
	StatusBadTooManyOperations:                    {"BadTooManyOperations", "The request could not be processed because it specified too many operations"},
	StatusBadTooManyMonitoredItems:                {"BadTooManyMonitoredItems", "The request could not be processed because there are too many monitored items"},
	StatusBadDataTypeIdUnknown:                    {"BadDataTypeIdUnknown", "The extension object cannot be decoded because the data type is not known"},
	StatusBadCertificateInvalid:                   {"BadCertificateInvalid", "The certificate provided is not valid"},
	StatusBadSecurityChecksFailed:                 {"BadSecurityChecksFailed", "An error occurred verifying security"},
	StatusBadCertificateTimeInvalid:               {"BadCertificateTimeInvalid", "The certificate has expired or is not yet valid"},
	StatusBadCertificateIssuerTimeInvalid:         {"BadCertificateIssuerTimeInvalid", "An issuer certificate has expired or is not yet valid"},
	StatusBadCertificateHostNameInvalid:           {"BadCertificateHostNameInvalid", "The hostname used to connect does not match a hostname in the certificate"},
	StatusBadCertificateUriInvalid:                {"BadCertificateUriInvalid", "The URI in the certificate does not match the application URI"},
	StatusBadCertificateUseNotAllowed:             {"BadCertificateUseNotAllowed", "The certificate may not be used for the requested operation"},
	StatusBadCertificateIssuerUseNotAllowed:       {"BadCertificateIssuerUseNotAllowed", "The issuer certificate may not be used for the requested operation"},
	StatusBadCertificateUntrusted:                 {"BadCertificateUntrusted", "The certificate is not trusted"},
	StatusBadCertificateRevocationUnknown:         {"BadCertificateRevocationUnknown", "It was not possible to determine if the certificate has been revoked"},
	StatusBadCertificateIssuerRevocationUnknown:   {"BadCertificateIssuerRevocationUnknown", "It was not possible to determine if the issuer certificate has been revoked"},
	StatusBadCertificateRevoked:                   {"BadCertificateRevoked", "The certificate has been revoked"},
	StatusBadCertificateIssuerRevoked:             {"BadCertificateIssuerRevoked", "The issuer certificate has been revoked"},
	StatusBadCertificateChainIncomplete:           {"BadCertificateChainIncomplete", "The certificate chain is incomplete"},
	StatusBadUserAccessDenied:                     {"BadUserAccessDenied", "User access denied"},
	StatusBadIdentityTokenInvalid:                 {"BadIdentityTokenInvalid", "The user identity token is not valid"},
	StatusBadIdentityTokenRejected:                {"BadIdentityTokenRejected", "The user identity token is rejected by the server"},
	StatusBadSecureChannelIdInvalid:               {"BadSecureChannelIdInvalid", "The specified secure channel is no longer valid"},
	StatusBadInvalidTimestamp:                     {"BadInvalidTimestamp", "The timestamp is outside the range allowed by the server"},
	StatusBadNonceInvalid:                         {"BadNonceInvalid", "The nonce does not appear to be a valid nonce"},
	StatusBadSessionIdInvalid:                     {"BadSessionIdInvalid", "The session ID is not valid"},
	StatusBadSessionClosed:                        {"BadSessionClosed", "The session was closed by the client"},
	StatusBadSessionNotActivated:                  {"BadSessionNotActivated", "The session cannot be used because it has not been activated"},
	StatusBadSubscriptionIdInvalid:                {"BadSubscriptionIdInvalid", "The subscription ID is not valid"},
	StatusBadRequestHeaderInvalid:                 {"BadRequestHeaderInvalid", "The header for the request is missing or invalid"},
	StatusBadTimestampsToReturnInvalid:            {"BadTimestampsToReturnInvalid", "The timestamps to return parameter is invalid"},
	StatusBadRequestCancelledByClient:             {"BadRequestCancelledByClient", "The request was cancelled by the client"},
	StatusBadNoCommunication:                      {"BadNoCommunication", "Communication with the data source is not available"},
	StatusBadWaitingForInitialData:                {"BadWaitingForInitialData", "Waiting for the server to obtain values from the data source"},
	StatusBadNodeIdInvalid:                        {"BadNodeIdInvalid", "The node ID format is not valid"},
	StatusBadNodeIdUnknown:                        {"BadNodeIdUnknown", "The node ID refers to a node that does not exist"},
	StatusBadAttributeIdInvalid:                   {"BadAttributeIdInvalid", "The attribute ID is not valid for this node"},
	StatusBadIndexRangeInvalid:                    {"BadIndexRangeInvalid", "The index range is invalid"},
	StatusBadIndexRangeNoData:                     {"BadIndexRangeNoData", "No data exists within the range of indexes specified"},
	StatusBadDataEncodingInvalid:                  {"BadDataEncodingInvalid", "The data encoding is invalid"},
	StatusBadDataEncodingUnsupported:              {"BadDataEncodingUnsupported", "The server does not support the requested data encoding"},
	StatusBadNotReadable:                          {"BadNotReadable", "The access level does not allow reading the value"},
	StatusBadNotWritable:                          {"BadNotWritable", "The access level does not allow writing the value"},
	StatusBadOutOfRange:                           {"BadOutOfRange", "The value was out of range"},
	StatusBadNotSupported:                         {"BadNotSupported", "The requested operation is not supported"},
	StatusBadNotFound:                             {"BadNotFound", "A requested item was not found"},
	StatusBadObjectDeleted:                        {"BadObjectDeleted", "The object cannot be used because it has been deleted"},
	StatusBadNotImplemented:                       {"BadNotImplemented", "Requested operation is not implemented"},
	StatusBadMonitoringModeInvalid:                {"BadMonitoringModeInvalid", "The monitoring mode is invalid"},
	StatusBadMonitoredItemIdInvalid:               {"BadMonitoredItemIdInvalid", "The monitored item ID is not valid"},
	StatusBadMonitoredItemFilterInvalid:           {"BadMonitoredItemFilterInvalid", "The monitored item filter parameter is not valid"},
	StatusBadMonitoredItemFilterUnsupported:       {"BadMonitoredItemFilterUnsupported", "The server does not support the requested monitored item filter"},
	StatusBadFilterNotAllowed:                     {"BadFilterNotAllowed", "A monitoring filter cannot be used with the attribute specified"},
	StatusBadContinuationPointInvalid:             {"BadContinuationPointInvalid", "The continuation point is not valid"},
	StatusBadNoContinuationPoints:                 {"BadNoContinuationPoints", "The server has no continuation points available"},
	StatusBadReferenceTypeIdInvalid:               {"BadReferenceTypeIdInvalid", "The reference type ID is not valid"},
	StatusBadBrowseDirectionInvalid:               {"BadBrowseDirectionInvalid", "The browse direction is not valid"},
	StatusBadNodeNotInView:                        {"BadNodeNotInView", "The node is not part of the view"},
	StatusBadServerUriInvalid:                     {"BadServerUriInvalid", "The server URI is not valid"},
	StatusBadServerNameMissing:                    {"BadServerNameMissing", "No server name was specified"},
	StatusBadDiscoveryUrlMissing:                  {"BadDiscoveryUrlMissing", "No discovery URL was specified"},
	StatusBadRequestTypeInvalid:                   {"BadRequestTypeInvalid", "The request type is not valid for the secure channel"},
	StatusBadSecurityModeRejected:                 {"BadSecurityModeRejected", "The security mode does not meet the security policy requirements"},
	StatusBadSecurityPolicyRejected:               {"BadSecurityPolicyRejected", "The security policy does not meet the security policy requirements"},
	StatusBadTooManySessions:                      {"BadTooManySessions", "The server has reached its maximum number of sessions"},
	StatusBadUserSignatureInvalid:                 {"BadUserSignatureInvalid", "The user token signature is not valid"},
	StatusBadApplicationSignatureInvalid:          {"BadApplicationSignatureInvalid", "The signature generated with the client certificate is not valid"},
	StatusBadNoValidCertificates:                  {"BadNoValidCertificates", "The client did not provide a valid certificate"},
	StatusBadTypeMismatch:                         {"BadTypeMismatch", "The value provided does not match the expected data type"},
	StatusBadMethodInvalid:                        {"BadMethodInvalid", "The method ID does not refer to a valid method"},
	StatusBadArgumentsMissing:                     {"BadArgumentsMissing", "Required argument(s) are missing"},
	StatusBadTooManySubscriptions:                 {"BadTooManySubscriptions", "Too many subscriptions"},
	StatusBadTooManyPublishRequests:               {"BadTooManyPublishRequests", "Too many publish requests have been queued"},
	StatusBadNoSubscription:                       {"BadNoSubscription", "There is no subscription available for this session"},
	StatusBadTcpServerTooBusy:                     {"BadTcpServerTooBusy", "The server cannot process the request because it is too busy"},
	StatusBadTcpMessageTypeInvalid:                {"BadTcpMessageTypeInvalid", "The type of the message is not valid"},
	StatusBadTcpSecureChannelUnknown:              {"BadTcpSecureChannelUnknown", "The secure channel is not known"},
	StatusBadTcpMessageTooLarge:                   {"BadTcpMessageTooLarge", "The message size exceeds the maximum allowed"},
	StatusBadTcpNotEnoughResources:                {"BadTcpNotEnoughResources", "There are not enough resources to process the request"},
	StatusBadTcpInternalError:                     {"BadTcpInternalError", "An internal error occurred"},
	StatusBadTcpEndpointUrlInvalid:                {"BadTcpEndpointUrlInvalid", "The endpoint URL is not valid"},
	StatusBadRequestInterrupted:                   {"BadRequestInterrupted", "The request was interrupted by a network error"},
	StatusBadRequestTimeout:                       {"BadRequestTimeout", "The request timed out"},
	StatusBadSecureChannelClosed:                  {"BadSecureChannelClosed", "The secure channel has been closed"},
	StatusBadSecureChannelTokenUnknown:            {"BadSecureChannelTokenUnknown", "The token has expired or is not recognized"},
	StatusBadSequenceNumberInvalid:                {"BadSequenceNumberInvalid", "The sequence number is not valid"},
	StatusBadProtocolVersionUnsupported:           {"BadProtocolVersionUnsupported", "The protocol version is not supported"},
	StatusBadConfigurationError:                   {"BadConfigurationError", "There is a configuration error"},
	StatusBadNotConnected:                         {"BadNotConnected", "The variable should receive its value from another variable but has never been configured"},
	StatusBadDeviceFailure:                        {"BadDeviceFailure", "There has been a failure in the device/data source"},
	StatusBadSensorFailure:                        {"BadSensorFailure", "There has been a failure in the sensor"},
	StatusBadOutOfService:                         {"BadOutOfService", "The source of the data is not operational"},
	StatusBadInvalidArgument:                      {"BadInvalidArgument", "One or more arguments are invalid"},
	StatusBadConnectionRejected:                   {"BadConnectionRejected", "The server rejected the connection"},
	StatusBadDisconnect:                           {"BadDisconnect", "The connection was disconnected"},
	StatusBadConnectionClosed:                     {"BadConnectionClosed", "The connection was closed"},
	StatusBadInvalidState:                         {"BadInvalidState", "The operation cannot be completed because the object is closed or in an invalid state"},
	StatusBadEndOfStream:                          {"BadEndOfStream", "Cannot move beyond end of the stream"},
	StatusBadNoDataAvailable:                      {"BadNoDataAvailable", "No data is currently available"},
	StatusBadWaitingForResponse:                   {"BadWaitingForResponse", "The server is waiting for a response to a request it sent"},
	StatusBadOperationAbandoned:                   {"BadOperationAbandoned", "The operation was abandoned because a previous operation is still running"},
	StatusBadExpectedStreamToBlock:                {"BadExpectedStreamToBlock", "The stream did not return all data requested (normally because it would block)"},
	StatusBadWouldBlock:                           {"BadWouldBlock", "Non blocking behaviour is required and the operation would block"},
	StatusBadSyntaxError:                          {"BadSyntaxError", "A value had an invalid syntax"},
	StatusBadMaxConnectionsReached:                {"BadMaxConnectionsReached", "The server has reached the maximum number of connections it supports"},
	StatusBadSecurityModeInsufficient:             {"BadSecurityModeInsufficient", "The security mode is not acceptable for the operation"},
	StatusBadCertificatePolicyCheckFailed:         {"BadCertificatePolicyCheckFailed", "The certificate does not meet the requirements of the security policy"},
	StatusBadTooManyArguments:                     {"BadTooManyArguments", "Too many arguments were provided"},
	StatusBadLicenseExpired:                       {"BadLicenseExpired", "The server requires a license to operate in general or to perform a service or operation, but existing license is expired"},
	StatusBadLicenseLimitsExceeded:                {"BadLicenseLimitsExceeded", "The server has limits on number of allowed operations / objects, based on installed licenses, and these limits where exceeded"},
	StatusBadLicenseNotAvailable:                  {"BadLicenseNotAvailable", "The server does not have a license which is required to operate in general or to perform a service or operation"},
	StatusGoodSubscriptionTransferred:             {"GoodSubscriptionTransferred", "The subscription was transferred to another session"},
	StatusGoodCompletesAsynchronously:             {"GoodCompletesAsynchronously", "The processing will complete asynchronously"},
	StatusGoodOverload:                            {"GoodOverload", "Sampling has slowed down due to resource limitations"},
	StatusGoodClamped:                             {"GoodClamped", "The value written was accepted but was clamped"},
	StatusBadStructureMissing:                     {"BadStructureMissing", "A mandatory structured parameter was missing or null"},
	StatusBadEventFilterInvalid:                   {"BadEventFilterInvalid", "The event filter is not valid"},
	StatusBadContentFilterInvalid:                 {"BadContentFilterInvalid", "The content filter is not valid"},
	StatusBadFilterOperatorInvalid:                {"BadFilterOperatorInvalid", "An unrecognized operator was provided in a filter"},
	StatusBadFilterOperatorUnsupported:            {"BadFilterOperatorUnsupported", "A valid operator was provided, but the server does not provide support for this filter operator"},
	StatusBadFilterOperandCountMismatch:           {"BadFilterOperandCountMismatch", "The number of operands provided for the filter operator was less then expected for the operand provided"},
	StatusBadFilterOperandInvalid:                 {"BadFilterOperandInvalid", "The operand used in a content filter is not valid"},
	StatusBadFilterElementInvalid:                 {"BadFilterElementInvalid", "The referenced element is not a valid element in the content filter"},
	StatusBadFilterLiteralInvalid:                 {"BadFilterLiteralInvalid", "The referenced literal is not a valid value"},
	StatusBadNumericOverflow:                      {"BadNumericOverflow", "The number was not accepted because of a numeric overflow"},
	StatusBadSempahoreFileMissing:                 {"BadSempahoreFileMissing", "The semaphore file specified by the client is not valid"},
	StatusBadIdentityChangeNotSupported:           {"BadIdentityChangeNotSupported", "The server does not support changing the user identity assigned to the session"},
	StatusBadRequestCancelledByRequest:            {"BadRequestCancelledByRequest", "The request was cancelled by the client with the Cancel service"},
	StatusBadParentNodeIdInvalid:                  {"BadParentNodeIdInvalid", "The parent node id does not to refer to a valid node"},
	StatusBadReferenceNotAllowed:                  {"BadReferenceNotAllowed", "The reference could not be created because it violates constraints imposed by the data model"},
	StatusBadNodeIdRejected:                       {"BadNodeIdRejected", "The requested node id was reject because it was either invalid or server does not allow node ids to be specified by the client"},
	StatusBadNodeIdExists:                         {"BadNodeIdExists", "The requested node id is already used by another node"},
	StatusBadNodeClassInvalid:                     {"BadNodeClassInvalid", "The node class is not valid"},
	StatusBadBrowseNameInvalid:                    {"BadBrowseNameInvalid", "The browse name is invalid"},
	StatusBadBrowseNameDuplicated:                 {"BadBrowseNameDuplicated", "The browse name is not unique among nodes that share the same relationship with the parent"},
	StatusBadNodeAttributesInvalid:                {"BadNodeAttributesInvalid", "The node attributes are not valid for the node class"},
	StatusBadTypeDefinitionInvalid:                {"BadTypeDefinitionInvalid", "The type definition node id does not reference an appropriate type node"},
	StatusBadSourceNodeIdInvalid:                  {"BadSourceNodeIdInvalid", "The source node id does not reference a valid node"},
	StatusBadTargetNodeIdInvalid:                  {"BadTargetNodeIdInvalid", "The target node id does not reference a valid node"},
	StatusBadDuplicateReferenceNotAllowed:         {"BadDuplicateReferenceNotAllowed", "The reference type between the nodes is already defined"},
	StatusBadInvalidSelfReference:                 {"BadInvalidSelfReference", "The server does not allow this type of self reference on this node"},
	StatusBadReferenceLocalOnly:                   {"BadReferenceLocalOnly", "The reference type is not valid for a reference to a remote server"},
	StatusBadNoDeleteRights:                       {"BadNoDeleteRights", "The server will not allow the node to be deleted"},
	StatusUncertainReferenceNotDeleted:            {"UncertainReferenceNotDeleted", "The server was not able to delete all target references"},
	StatusBadServerIndexInvalid:                   {"BadServerIndexInvalid", "The server index is not valid"},
	StatusBadViewIdUnknown:                        {"BadViewIdUnknown", "The view id does not refer to a valid view node"},
	StatusBadViewTimestampInvalid:                 {"BadViewTimestampInvalid", "The view timestamp is not available or not supported"},
	StatusBadViewParameterMismatch:                {"BadViewParameterMismatch", "The view parameters are not consistent with each other"},
	StatusBadViewVersionInvalid:                   {"BadViewVersionInvalid", "The view version is not available or not supported"},
	StatusUncertainNotAllNodesAvailable:           {"UncertainNotAllNodesAvailable", "The list of references may not be complete because the underlying system is not available"},
	StatusGoodResultsMayBeIncomplete:              {"GoodResultsMayBeIncomplete", "The server should have followed a reference to a node in a remote server but did not"},
	StatusBadNotTypeDefinition:                    {"BadNotTypeDefinition", "The provided node id was not a type definition node id"},
	StatusUncertainReferenceOutOfServer:           {"UncertainReferenceOutOfServer", "One of the references to follow in the relative path references to a node in the address space in another server"},
	StatusBadTooManyMatches:                       {"BadTooManyMatches", "The requested operation has too many matches to return"},
	StatusBadQueryTooComplex:                      {"BadQueryTooComplex", "The requested operation requires too many resources in the server"},
	StatusBadNoMatch:                              {"BadNoMatch", "The requested operation has no match to return"},
	StatusBadMaxAgeInvalid:                        {"BadMaxAgeInvalid", "The max age parameter is invalid"},
	StatusBadHistoryOperationInvalid:              {"BadHistoryOperationInvalid", "The history details parameter is not valid"},
	StatusBadHistoryOperationUnsupported:          {"BadHistoryOperationUnsupported", "The server does not support the requested operation"},
	StatusBadInvalidTimestampArgument:             {"BadInvalidTimestampArgument", "The defined timestamp to return was invalid"},
	StatusBadWriteNotSupported:                    {"BadWriteNotSupported", "The server does not support writing the combination of value, status and timestamps provided"},
	StatusBadNotExecutable:                        {"BadNotExecutable", "The executable attribute does not allow the execution of the method"},
	StatusBadSequenceNumberUnknown:                {"BadSequenceNumberUnknown", "The sequence number is unknown to the server"},
	StatusBadMessageNotAvailable:                  {"BadMessageNotAvailable", "The requested notification message is no longer available"},
	StatusBadInsufficientClientProfile:            {"BadInsufficientClientProfile", "The client of the current session does not support one or more profiles that are necessary for the subscription"},
	StatusBadStateNotActive:                       {"BadStateNotActive", "The sub-state machine is not currently active"},
	StatusBadAlreadyExists:                        {"BadAlreadyExists", "An equivalent rule already exists"},
	StatusBadDeadbandFilterInvalid:                {"BadDeadbandFilterInvalid", "The deadband filter is not valid"},
	StatusUncertainNoCommunicationLastUsableValue: {"UncertainNoCommunicationLastUsableValue", "Communication to the data source has failed. The variable value is the last value that had a good quality"},
	StatusUncertainLastUsableValue:                {"UncertainLastUsableValue", "Whatever was updating this value has stopped doing so"},
	StatusUncertainSubstituteValue:                {"UncertainSubstituteValue", "The value is an operational value that was manually overwritten"},
	StatusUncertainInitialValue:                   {"UncertainInitialValue", "The value is an initial value for a variable that normally receives its value from another variable"},
	StatusUncertainSensorNotAccurate:              {"UncertainSensorNotAccurate", "The value is at one of the sensor limits"},
	StatusUncertainEngineeringUnitsExceeded:       {"UncertainEngineeringUnitsExceeded", "The value is outside of the range of values defined for this parameter"},
	StatusUncertainSubNormal:                      {"UncertainSubNormal", "The value is derived from multiple sources and has less than the required number of good sources"},
	StatusGoodLocalOverride:                       {"GoodLocalOverride", "The value has been overridden"},
	StatusBadRefreshInProgress:                    {"BadRefreshInProgress", "This condition refresh failed, a condition refresh operation is already in progress"},
	StatusBadConditionAlreadyDisabled:             {"BadConditionAlreadyDisabled", "This condition has already been disabled"},
	StatusBadConditionAlreadyEnabled:              {"BadConditionAlreadyEnabled", "This condition has already been enabled"},
	StatusBadConditionDisabled:                    {"BadConditionDisabled", "Property not available, this condition is disabled"},
	StatusBadEventIdUnknown:                       {"BadEventIdUnknown", "The specified event id is not recognized"},
	StatusBadEventNotAcknowledgeable:              {"BadEventNotAcknowledgeable", "The event cannot be acknowledged"},
	StatusBadDialogNotActive:                      {"BadDialogNotActive", "The dialog condition is not active"},
	StatusBadDialogResponseInvalid:                {"BadDialogResponseInvalid", "The response is not valid for the dialog"},
	StatusBadConditionBranchAlreadyAcked:          {"BadConditionBranchAlreadyAcked", "The condition branch has already been acknowledged"},
	StatusBadConditionBranchAlreadyConfirmed:      {"BadConditionBranchAlreadyConfirmed", "The condition branch has already been confirmed"},
	StatusBadConditionAlreadyShelved:              {"BadConditionAlreadyShelved", "The condition has already been shelved"},
	StatusBadConditionNotShelved:                  {"BadConditionNotShelved", "The condition is not currently shelved"},
	StatusBadShelvingTimeOutOfRange:               {"BadShelvingTimeOutOfRange", "The shelving time not within an acceptable range"},
	StatusBadNoData:                               {"BadNoData", "No data exists for the requested time range or event filter"},
	StatusBadBoundNotFound:                        {"BadBoundNotFound", "No data found to provide upper or lower bound value"},
	StatusBadBoundNotSupported:                    {"BadBoundNotSupported", "The server cannot retrieve a bound for the variable"},
	StatusBadDataLost:                             {"BadDataLost", "Data is missing due to collection started/stopped/lost"},
	StatusBadDataUnavailable:                      {"BadDataUnavailable", "Expected data is unavailable for the requested time range due to an un-mounted volume, an off-line archive or tape, or similar reason for temporary unavailability"},
	StatusBadEntryExists:                          {"BadEntryExists", "The data or event was not successfully inserted because a matching entry exists"},
	StatusBadNoEntryExists:                        {"BadNoEntryExists", "The data or event was not successfully updated because no matching entry exists"},
	StatusBadTimestampNotSupported:                {"BadTimestampNotSupported", "The client requested history using a timestamp format the server does not support"},
	StatusGoodEntryInserted:                       {"GoodEntryInserted", "The data or event was successfully inserted into the historical database"},
	StatusGoodEntryReplaced:                       {"GoodEntryReplaced", "The data or event field was successfully replaced in the historical database"},
	StatusUncertainDataSubNormal:                  {"UncertainDataSubNormal", "The value is derived from multiple values and has less than the required number of good values"},
	StatusGoodNoData:                              {"GoodNoData", "No data exists for the requested time range or event filter"},
	StatusGoodMoreData:                            {"GoodMoreData", "The data or event field was not returned in full because more data is available beyond the requested limit"},
	StatusBadAggregateListMismatch:                {"BadAggregateListMismatch", "The requested number of aggregates does not match the requested number of node ids"},
	StatusBadAggregateNotSupported:                {"BadAggregateNotSupported", "The requested aggregate is not support by the server"},
	StatusBadAggregateInvalidInputs:               {"BadAggregateInvalidInputs", "The aggregate value could not be derived due to invalid data inputs"},
	StatusBadAggregateConfigurationRejected:       {"BadAggregateConfigurationRejected", "The aggregate configuration is not valid for specified node"},
	StatusGoodDataIgnored:                         {"GoodDataIgnored", "The request specifies fields which are not valid for the event type or cannot be saved by the historian"},
	StatusBadRequestNotAllowed:                    {"BadRequestNotAllowed", "The request was rejected by the server because it did not meet the criteria set by the server"},
	StatusBadRequestNotComplete:                   {"BadRequestNotComplete", "The request has not been processed by the server yet"},
	StatusGoodEdited:                              {"GoodEdited", "The value does not come from the real source and has been edited by the server"},
	StatusGoodPostActionFailed:                    {"GoodPostActionFailed", "There was an error in execution of these post-actions"},
	StatusUncertainDominantValueChanged:           {"UncertainDominantValueChanged", "The related engineering unit has been changed but the value is still in the original unit"},
	StatusGoodDependentValueChanged:               {"GoodDependentValueChanged", "A dependent value has been changed but the change has not been applied to the device"},
	StatusBadDominantValueChanged:                 {"BadDominantValueChanged", "The related engineering unit has been changed but this change has not been applied to the device. The variable value is still dependent on the previous unit but its status is currently bad"},
	StatusUncertainDependentValueChanged:          {"UncertainDependentValueChanged", "A dependent value has been changed but the change has not been applied to the device. The quality of the dominant variable is uncertain"},
	StatusBadDependentValueChanged:                {"BadDependentValueChanged", "A dependent value has been changed but the change has not been applied to the device. The quality of the dominant variable is bad"},
	StatusGoodCommunicationEvent:                  {"GoodCommunicationEvent", "The communication layer has raised an event"},
	StatusGoodShutdownEvent:                       {"GoodShutdownEvent", "The system is shutting down"},
	StatusGoodCallAgain:                           {"GoodCallAgain", "The operation is not finished and needs to be called again"},
	StatusGoodNonCriticalTimeout:                  {"GoodNonCriticalTimeout", "A non-critical timeout occurred"},
}

// Known reports whether the status code is in the status table.
func (s StatusCode) Known() bool {
	_, ok := statusCodeMap[s]
	return ok
}

// String returns the string representation of the status code.
func (s StatusCode) String() string {
	if info, ok := statusCodeMap[s]; ok {
		return info.name
	}
	return fmt.Sprintf("StatusCode(0x%08X)", uint32(s))
}

// Description returns a human-readable description of the status code.
func (s StatusCode) Description() string {
	if info, ok := statusCodeMap[s]; ok {
		return info.description
	}
	switch {
	case s.IsGood():
		return "The operation completed successfully"
	case s.IsUncertain():
		return "The operation completed with uncertain result"
	case s.IsBad():
		return "The operation failed"
	default:
		return "Unknown status"
	}
}

// Error returns a formatted error string with code, name, and description.
func (s StatusCode) Error() string {
	if info, ok := statusCodeMap[s]; ok {
		return fmt.Sprintf("%s (0x%08X): %s", info.name, uint32(s), info.description)
	}
	return fmt.Sprintf("StatusCode 0x%08X", uint32(s))
}

// IsGood returns true if the status code indicates success.
func (s StatusCode) IsGood() bool {
	return (uint32(s) & StatusSeverityMask) == StatusSeverityGood
}

// IsUncertain returns true if the status code indicates uncertainty.
func (s StatusCode) IsUncertain() bool {
	return (uint32(s) & StatusSeverityMask) == StatusSeverityUncertain
}

// IsBad returns true if the status code indicates failure.
func (s StatusCode) IsBad() bool {
	return (uint32(s) & StatusSeverityMask) == StatusSeverityBad
}

// OPCUAError is a service failure carrying a status code.
type OPCUAError struct {
	ServiceID  ServiceID
	StatusCode StatusCode
	Message    string
}

// Error implements the error interface.
func (e *OPCUAError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("opcua: %s (%s): %s", e.StatusCode.String(), e.ServiceID, e.Message)
	}
	return fmt.Sprintf("opcua: %s (%s)", e.StatusCode.String(), e.ServiceID)
}

// Is matches another *OPCUAError or a bare StatusCode with the same code.
func (e *OPCUAError) Is(target error) bool {
	switch t := target.(type) {
	case *OPCUAError:
		return e.StatusCode == t.StatusCode
	case StatusCode:
		return e.StatusCode == t
	}
	return false
}

// Unwrap exposes the status code to errors.As.
func (e *OPCUAError) Unwrap() error {
	return e.StatusCode
}

// Common errors.
var (
	// ErrInvalidNodeID indicates a malformed textual node id.
	ErrInvalidNodeID = errors.New("opcua: invalid node ID")

	// ErrInvalidMessage indicates malformed binary data.
	ErrInvalidMessage = errors.New("opcua: invalid message")

	// ErrUnsupportedType indicates a value kind that cannot be converted.
	ErrUnsupportedType = errors.New("opcua: unsupported type")

	// ErrSubscriptionExists is returned when a subscription is created twice.
	ErrSubscriptionExists = errors.New("opcua: subscription already exists")

	// ErrSubscriptionNotCreated indicates an operation on a subscription
	// that is not active on the server.
	ErrSubscriptionNotCreated = errors.New("opcua: subscription not created")

	// ErrMonitoredItemNotFound indicates the monitored item was not found.
	ErrMonitoredItemNotFound = errors.New("opcua: monitored item not found")

	// ErrClosed indicates the worker has been closed.
	ErrClosed = errors.New("opcua: closed")
)

// NewOPCUAError creates a new OPC UA error.
func NewOPCUAError(svc ServiceID, sc StatusCode, msg string) *OPCUAError {
	return &OPCUAError{
		ServiceID:  svc,
		StatusCode: sc,
		Message:    msg,
	}
}

// IsStatusCode checks if an error carries a specific status code.
func IsStatusCode(err error, code StatusCode) bool {
	var sc StatusCode
	if errors.As(err, &sc) {
		return sc == code
	}
	return false
}

// IsTimeout checks if the error is a timeout error.
func IsTimeout(err error) bool {
	return IsStatusCode(err, StatusBadTimeout) || IsStatusCode(err, StatusBadRequestTimeout)
}
