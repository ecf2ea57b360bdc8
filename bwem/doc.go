// Package bwem analyzes Brood War-style tile maps.
//
// Given a raw snapshot of the map (per-minitile walkability, per-tile
// buildability and ground height, starting locations and neutral units),
// the analysis derives a high level decomposition of the map into Areas,
// ChokePoints and Bases, together with precomputed distances and shortest
// paths between every pair of ChokePoints.
//
// The pipeline runs in a single Initialize pass:
//
//  - Load the grids (walkability, buildability, ground height).
//  - Classify unwalkable components into seas and lakes.
//  - Register the neutral units (minerals, geysers, static buildings).
//  - Compute the altitude field (distance to the nearest sea).
//  - Detect the blocking neutrals.
//  - Grow the Areas and collect the raw frontier between them.
//  - Extract the ChokePoints from the frontier.
//  - Compute the ChokePoint distance and path matrices.
//  - Place the Bases.
//
// Once Initialize has returned, the decomposition is immutable except for
// the destruction hooks (OnMineralDestroyed, OnStaticBuildingDestroyed)
// which handle the narrow "blocking neutral destroyed" update.
//
// The pipeline is single-threaded and synchronous; if queries must overlap
// with the destruction hooks, the caller serializes them externally.
package bwem
