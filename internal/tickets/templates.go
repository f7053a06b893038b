package tickets

// categories in the order the business-hours weighting applies to.
var categories = []string{
	"Account Access",
	"Billing Issue",
	"Feature Request",
	"Technical Bug",
	"Data Issue",
	"Performance Issue",
	"General Inquiry",
}

// businessHoursWeights biases weekday daytime traffic toward bug and access
// reports, the way real queues skew.
var businessHoursWeights = []float64{0.15, 0.15, 0.1, 0.2, 0.15, 0.15, 0.1}

var productAreas = []string{
	"authentication",
	"billing",
	"data-export",
	"mobile-app",
	"web-dashboard",
	"api-integration",
	"notifications",
	"user-management",
	"reporting",
	"search-functionality",
	"file-upload",
	"payment-processing",
}

var supportTeams = map[string][]string{
	"Account Access":    {"Identity & Access Team", "Customer Success", "Security Team"},
	"Billing Issue":     {"Billing Support", "Finance Team", "Account Management"},
	"Feature Request":   {"Product Team", "Engineering", "Customer Success"},
	"Technical Bug":     {"Engineering Team", "QA Team", "Technical Support"},
	"Data Issue":        {"Data Operations", "Engineering Team", "Technical Support"},
	"Performance Issue": {"Infrastructure Team", "Engineering Team", "SRE Team"},
	"General Inquiry":   {"Customer Support", "Customer Success", "Documentation Team"},
}

var customerTiers = []string{"Free", "Basic", "Premium", "Enterprise"}

var channels = []string{"Email", "Chat", "Phone", "Web Form", "API"}

// template holds the per-category text variants. Placeholders like {days}
// are substituted with randomized values at generation time.
type template struct {
	titles       []string
	descriptions []string
	resolutions  []string
}

var templates = map[string]template{
	"Account Access": {
		titles: []string{
			"Unable to log in - password reset not working",
			"Account locked after multiple failed login attempts",
			"Two-factor authentication not receiving codes",
			"Email verification link expired",
			"SSO integration failing for enterprise account",
		},
		descriptions: []string{
			"Customer reports they cannot access their account. Password reset email received but link shows \"expired\" error. Last successful login was {days} days ago.",
			"User account automatically locked after {attempts} failed login attempts. Customer requesting immediate unlock. Business impact: cannot access critical data.",
			"2FA codes not arriving via SMS. Customer tried {attempts} times. Phone number verified as correct in profile settings.",
			"New user signup completed but verification email link returns 404 error. Customer attempted signup {hours} hours ago.",
			"Enterprise SSO integration throwing \"invalid_issuer\" error. Affects {users} users in organization. Integration worked fine until {days} days ago.",
		},
		resolutions: []string{
			"Password reset link regenerated and sent. Customer able to access account successfully.",
			"Account unlocked. Added IP address to allowlist. Customer confirmed access restored.",
			"Identified SMS gateway delay. Switched to email 2FA. Customer logged in successfully.",
			"Email verification system had caching issue. Cleared cache, new link sent. Signup completed.",
			"SSO configuration updated. Issuer URL corrected in settings. All {users} users can now authenticate.",
		},
	},
	"Billing Issue": {
		titles: []string{
			"Incorrect charge on credit card - double billing",
			"Subscription not cancelled despite confirmation",
			"Upgrade to premium plan not reflected in account",
			"Invoice missing - need copy for expense report",
			"Annual plan charged monthly rate instead",
		},
		descriptions: []string{
			"Customer charged ${amount} twice on {date}. First charge at {time1}, second at {time2}. Only one charge should have occurred. Requesting immediate refund.",
			"Customer cancelled subscription on {date} but was charged ${amount} on renewal date. Confirmation email received but billing continued.",
			"Upgraded from Basic to Premium {days} days ago. Payment processed successfully (${amount}) but account still shows Basic tier features.",
			"Customer needs invoice #INV-{invoice_num} for expense reporting. Invoice not appearing in account dashboard under billing history.",
			"Customer on annual plan (should be ${annual_amount}/year) but being charged ${monthly_amount} monthly. Contract states annual billing.",
		},
		resolutions: []string{
			"Duplicate charge refunded. ${amount} credited back to card within 3-5 business days.",
			"Subscription cancellation processed retroactively. ${amount} refunded. Confirmation email sent.",
			"Account tier manually upgraded to Premium. Features now accessible. System sync issue resolved.",
			"Invoice #INV-{invoice_num} regenerated and emailed. Also available in dashboard billing section.",
			"Billing plan corrected to annual. Future charges will be ${annual_amount}/year. Partial refund issued.",
		},
	},
	"Feature Request": {
		titles: []string{
			"Request: Add bulk export functionality",
			"Feature request: Dark mode for web dashboard",
			"Suggestion: Email notification customization",
			"Enhancement: API rate limit increase option",
			"Request: Mobile app offline mode",
		},
		descriptions: []string{
			"Customer managing {count} records would like ability to export all data at once. Current export limit is {limit} records. Business use case: quarterly reporting.",
			"User requesting dark mode option for dashboard. Reports eye strain during extended sessions. Would increase product usability for {hours}+ hour daily usage.",
			"Request to customize which events trigger email notifications. Currently all {count} notification types enabled/disabled together. Needs granular control.",
			"Developer hitting API rate limit of {limit} requests/minute. Willing to upgrade to higher tier for increased limit. Current integration requires {needed} requests/minute.",
			"Field teams need offline access to mobile app. Current implementation requires constant internet connection. Critical for {use_case} use case.",
		},
		resolutions: []string{
			"Feature request logged as FR-{ticket_num}. Added to product roadmap for Q{quarter} evaluation.",
			"Dark mode feature already in development. Expected release in {weeks} weeks. Added customer to beta program.",
			"Notification customization feature prioritized. Engineering team assigned. Estimated delivery: {weeks} weeks.",
			"Enterprise tier created with {limit} requests/minute limit. Customer upgraded. Rate limit increased.",
			"Offline mode requirement documented. Added to mobile app roadmap. Will notify when available.",
		},
	},
	"Technical Bug": {
		titles: []string{
			"Search functionality returning no results",
			"File upload fails for files larger than 10MB",
			"Dashboard charts not rendering in Chrome browser",
			"Mobile app crashing on Android 14 devices",
			"API returning 500 errors intermittently",
		},
		descriptions: []string{
			"Search feature returns zero results for queries that should match existing records. Tested with {count} different queries. Works in Safari but not Chrome/Firefox.",
			"Upload fails for files over {size}MB with error \"upload_failed\". Files under {size}MB work fine. File types: PDF, DOCX. Browser: Chrome {version}.",
			"Dashboard data visualization charts not displaying. Blank white space where charts should appear. Issue started {days} days ago. Works in Safari/Firefox, broken in Chrome.",
			"Mobile app crashes on launch for Android 14 users. Crash occurs within {seconds} seconds of opening app. Android 13 and below working normally. {users} users affected.",
			"API endpoint /api/v2/data returning HTTP 500 errors approximately {percent}% of the time. No pattern to when errors occur. Other endpoints working normally.",
		},
		resolutions: []string{
			"Search index rebuilt. Missing records re-indexed. Search functionality now returning correct results.",
			"File upload limit increased to {size}MB. Server configuration updated. Uploads now working.",
			"Chrome rendering bug fixed. Deployed patch to production. Charts now displaying correctly.",
			"Android 14 compatibility issue identified. App update v{version} released. Crash resolved.",
			"API 500 error traced to database connection pool exhaustion. Pool size increased. Errors resolved.",
		},
	},
	"Data Issue": {
		titles: []string{
			"Imported data not appearing in dashboard",
			"Export file contains incorrect/corrupted data",
			"Data synchronization delay between systems",
			"Records showing duplicate entries after migration",
			"Historical data missing from reports",
		},
		descriptions: []string{
			"Customer imported CSV file with {count} records {hours} hours ago. Import process showed \"success\" but records not visible in dashboard or search results.",
			"Exported data file contains {percent}% corrupted records. Values showing as \"NULL\" or random characters. Same records display correctly in web interface.",
			"Changes made in System A taking {minutes} minutes to appear in System B. Expected sync time is under 5 seconds. Started occurring {days} days ago.",
			"After data migration {date}, showing {count} duplicate records. Each record appears {duplicates} times. Duplicates have identical data except timestamps.",
			"Reports for date range {start_date} to {end_date} showing incomplete data. Records from {missing_date} completely missing. Database shows records exist.",
		},
		resolutions: []string{
			"Import job re-run manually. All {count} records now visible. Background job queue was stuck.",
			"Export bug fixed. Data integrity check added to export process. Re-exported file sent to customer.",
			"Sync delay caused by network latency. Optimized sync protocol. Latency reduced to under 5 seconds.",
			"Duplicate records identified and merged. De-duplication script run. {count} unique records remain.",
			"Missing data restored from backup. Records for {missing_date} now showing in reports.",
		},
	},
	"Performance Issue": {
		titles: []string{
			"Dashboard loading extremely slowly",
			"Search queries timing out after 30 seconds",
			"Report generation taking over 10 minutes",
			"Mobile app very laggy and unresponsive",
			"API response times increased significantly",
		},
		descriptions: []string{
			"Dashboard taking {seconds} seconds to load. Previously loaded in under 5 seconds. Issue started {days} days ago. Tested on multiple browsers/devices.",
			"Search functionality timing out. Queries that previously returned results in 2-3 seconds now taking over {seconds} seconds or failing entirely.",
			"Generating monthly report taking {minutes} minutes. Report contains {count} records. Same report last month took under 2 minutes. No data volume change.",
			"Mobile app (iOS version {version}) extremely laggy. Actions like button taps taking {seconds} seconds to register. App version {old_version} performed normally.",
			"API endpoint response times increased from average {old_time}ms to {new_time}ms. No changes to request volume or query complexity. Started {days} days ago.",
		},
		resolutions: []string{
			"Database query optimized. Added caching layer. Dashboard load time reduced to under 3 seconds.",
			"Search timeout increased to {seconds} seconds. Query optimizer improved. Searches now completing.",
			"Report generation parallelized. Processing time reduced from {old_minutes} to {new_minutes} minutes.",
			"Mobile app performance issue fixed in v{version}. Memory leak resolved. Update available in app store.",
			"API infrastructure scaled horizontally. Response times back to {old_time}ms average. Monitoring added.",
		},
	},
	"General Inquiry": {
		titles: []string{
			"How to configure email notifications?",
			"Question about data retention policy",
			"Requesting documentation for API integration",
			"How to add team members to account?",
			"What features included in Premium plan?",
		},
		descriptions: []string{
			"Customer asking how to configure notification settings. Wants to enable email alerts for {event_type} events but disable for others. Looking for step-by-step instructions.",
			"Customer inquiry about data retention policy. Specifically asking how long data is stored and if there is archival option for older than {days} days.",
			"Developer requesting comprehensive API documentation. Specifically needs information about authentication, rate limits, and available endpoints.",
			"Account admin asking how to invite team members. Current team size: {count}. Wants to add {new_count} additional users. Needs to understand permission levels.",
			"Customer on Basic plan considering upgrade. Requesting detailed comparison of Premium vs Basic features. Specific interest in {feature1} and {feature2}.",
		},
		resolutions: []string{
			"Step-by-step notification configuration guide sent via email. Customer confirmed settings updated successfully.",
			"Data retention policy documentation provided. Data stored for {days} days with archival options explained.",
			"Complete API documentation sent. Integration guide included. Developer confirmed sufficient for integration.",
			"Team member invitation guide provided. Customer successfully added {new_count} users with appropriate permissions.",
			"Feature comparison chart sent. Explained Premium benefits. Customer upgraded to Premium plan.",
		},
	},
}
