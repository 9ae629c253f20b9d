// Package models defines domain entities for the book catalogue client.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): structs matching the remote wire formats
//   - [Book] : A catalogue record as the book service serializes it
//   - [UserProfile] : The account record served by the user endpoints
//   - [UserAttributes] : The identity provider's attribute set for a signed-in user
//
// 2. Form option lists: the fixed choices offered by the book form
// ([GenreOptions], [LanguageOptions], [PublicationYears]).
//
// Book ids are generated client side before first save and never change
// afterwards. The server owns everything else about a record's lifecycle.
package models
