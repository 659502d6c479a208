// Copyright (c) 2025 The Backchannel Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ident generates identifiers.

There is no authentication in Backchannel and no server-tracked
identity, so ids are the only tokens the system mints:

  - NewDocumentID: short random base62 ids for groups and questions,
    minted server-side when a document is created.
  - NewResponseID: v4 UUIDs for responses, minted client-side before
    the write (responses are embedded documents, so the store never
    hands back an id for them).
  - GenerateID: raw random hex of a given byte length, used by tests
    and fixtures.
*/
package ident
