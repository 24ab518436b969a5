// Package main Authorize.Net profile service API
//
//	@title						Authorize.Net Profile Service
//	@version					1.0
//	@description				Reconciles local users with gateway customer profiles and charges their stored payment profiles.
//
//	@host						localhost:8080
//	@BasePath					/v1
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"
//
//	@tag.name					Customer Profiles
//	@tag.description			Customer profile reconciliation
//
//	@tag.name					Payment Profiles
//	@tag.description			Tokenized payment instruments
//
//	@tag.name					Transactions
//	@tag.description			Charges and refunds
package main
