package mcpserver

// Instructions is the server-level guidance sent to MCP clients. It
// teaches the client which tool, resource or prompt fits each GTD
// phase, so the model reaches for the cheap listing resources before
// the heavy content ones.
const Instructions = `GTD (Getting Things Done) vault management over MCP resources, tools and prompts.

## Quick Start

1. Setup: call the setup_gtd_vault tool to create any missing GTD structure (safe on existing vaults, never overwrites).
2. Capture: call the capture_inbox tool to drop a thought into the inbox without breaking flow.
3. Explore: read gtd://{vault_path}/files for a lightweight listing of every GTD file.
4. Focus: read gtd://{vault_path}/files/{file_type} to list one file type (inbox, projects, next-actions, waiting-for, someday-maybe, reference).
5. Analyze: read gtd://{vault_path}/content for complete vault content when a full review is actually needed.

Replace {vault_path} with the real path to the vault directory in every URI.

## Resource Patterns

- Lightweight listings: gtd://{vault_path}/files returns paths, titles and task counts only. Fast; use it for navigation and discovery.
- Filtered listings: gtd://{vault_path}/files/{file_type} narrows the listing to one file type.
- Selective reading: gtd://{vault_path}/file/{file_path} returns one file with raw content, frontmatter, extracted tasks and links.
- Comprehensive access: gtd://{vault_path}/content returns every file with full content. Expensive; reserve it for weekly reviews and vault-wide analysis.
- Filtered content: gtd://{vault_path}/content/{file_type} returns full content for one file type.

## Workflow Examples

Daily inbox processing:
1. Read gtd://{vault_path}/files/inbox to see what is waiting.
2. Run the inbox_clarification prompt on each item, or batch_process_inbox for many items at once.
3. Use quick_categorize when an item is obvious and a full clarification would be overkill.

Weekly review:
1. Read gtd://{vault_path}/files for the vault overview.
2. Read gtd://{vault_path}/content/projects to check each project for a next action.
3. Read gtd://{vault_path}/content/waiting-for to chase blocked items.

Project planning:
1. Read gtd://{vault_path}/file/{file_path} for the project file in question.
2. Follow its wikilinks to related notes through further file reads.

## Performance Guidelines

Prefer listings over content. The files resources skip body text and are cheap at any vault size; the content resources scale with the vault and belong in deliberate analysis steps, not in loops.

## GTD Phase Support

- Capture: capture_inbox tool for rapid thought collection.
- Clarify: inbox_clarification, quick_categorize and batch_process_inbox prompts turn inbox items into structured decisions.
- Organize: file listings show where items live; single file reads verify a project's shape.
- Reflect: content resources feed weekly reviews.
- Engage: filtered listings of next-actions by context drive the day's work.`
