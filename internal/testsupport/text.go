package testsupport

import "strings"

// Report is a paragraph of ordinary prose used for text similarity tests.
const Report = "The quarterly infrastructure report covers storage growth, network latency, and the migration of archival workloads to colder tiers. Storage consumption rose by eleven percent while deduplication savings held steady across every region. Network latency between the primary and secondary data centers improved after the routing changes in March. The archival migration moved four hundred terabytes of rarely accessed documents, scanned invoices, and legacy mailboxes. Operators reported fewer paging incidents, faster restores, and lower replication backlog. Next quarter the team will retire the oldest tape library, expand object storage capacity, and publish revised retention guidance for every business unit."

// ReportWithTypo is Report with a single misspelled word.
var ReportWithTypo = strings.Replace(Report, "replication backlog", "replicaton backlog", 1)

// Recipe shares no topic with Report.
const Recipe = "Preheat the oven and butter a deep baking dish. Whisk the eggs with warm milk, a pinch of salt, grated nutmeg, and plenty of sharp cheddar. Layer thin potato slices with caramelized onions, pour the custard over the top, and bake until the surface turns golden and bubbling. Let the gratin rest for ten minutes before serving with a crisp green salad and lemon dressing."
