package teams

import (
	"fmt"
	"strings"
	"time"

	"github.com/societymind/somind/pkg/models"
)

// timestampLayout matches the "Generated:" stamp used in every deliverable.
const timestampLayout = "2006-01-02 15:04:05"

// researchTemplate is the standard research deliverable. Placeholders:
// timestamp, requirements.
const researchTemplate = `
RESEARCH & ANALYSIS TEAM OUTPUT
Generated: %s

REQUIREMENTS ANALYSIS:
%s

RESEARCH SPECIALIST FINDINGS:
• Market size analysis: Target market shows 15%% annual growth
• Competitive landscape: 3 major competitors identified
• Customer segments: Primary segment (ages 25-40) represents 60%% of market
• Market trends: Increasing demand for AI-powered solutions
• Opportunity assessment: Strong market opportunity with differentiation potential

DATA ANALYST INSIGHTS:
• Statistical analysis of market data shows significant correlation between user engagement and AI features
• Predictive modeling suggests 25%% market penetration achievable in 18 months
• A/B testing framework recommended for feature validation
• Key performance indicators defined: user acquisition, retention, engagement
• Risk analysis: Technology adoption curve shows favorable timing

REPORT WRITER SYNTHESIS:
EXECUTIVE SUMMARY:
The analysis reveals a compelling market opportunity with strong growth potential.
Key success factors include AI differentiation, targeted user experience, and
data-driven optimization.

RECOMMENDATIONS:
1. Focus on AI-powered personalization as primary differentiator
2. Target initial launch to 25-40 age demographic
3. Implement comprehensive analytics from day one
4. Plan for rapid scaling based on early adoption metrics
5. Establish competitive monitoring and response protocols

NEXT STEPS:
• Detailed user persona development
• Competitive feature analysis
• Market entry strategy refinement
• Success metrics framework implementation
`

// researchCrisisTemplate is the research deliverable for crisis runs.
const researchCrisisTemplate = `
INCIDENT ANALYSIS - CRISIS RESPONSE
Generated: %s

INCIDENT BRIEF:
%s

BREACH ASSESSMENT:
• Incident Type: Potential data breach via SQL injection
• Scope: ~50,000 user accounts potentially affected
• Data Exposed: Email addresses, encrypted passwords, fitness metrics
• Discovery: Automated monitoring detected unusual database activity

IMPACT ANALYSIS:
• Immediate Risk: HIGH - User data potentially compromised
• Regulatory Risk: GDPR/CCPA violations possible ($20M+ fines)
• Reputation Risk: HIGH - Trust and brand damage likely
• Financial Impact: Estimated $2-5M in direct costs and lost revenue

STAKEHOLDER MAPPING:
• Primary: 50,000 affected users requiring immediate notification
• Secondary: 500,000 total users (trust impact)
• Regulatory: GDPR authorities, state privacy commissioners
• Business: Payment processors, integration partners, investors
• Public: Media, industry analysts, competitor monitoring

TIMELINE REQUIREMENTS:
• Immediate (0-4 hours): Contain breach, secure systems
• Short-term (4-24 hours): User notification, regulatory filing
• Medium-term (1-7 days): Public communication, remediation
• Long-term (1-3 months): System hardening, trust rebuilding

CRITICAL ACTIONS:
1. Immediate system lockdown and forensic investigation
2. Legal and regulatory notification within 72 hours
3. User communication within 24 hours with clear action steps
4. Enhanced security implementation and third-party audit
`

// creativeTemplate is the standard creative deliverable.
const creativeTemplate = `
CREATIVE & DESIGN TEAM OUTPUT
Generated: %s

PROJECT BRIEF:
%s

CREATIVE STRATEGIST FRAMEWORK:
BRAND POSITIONING:
• Value Proposition: "AI that understands your fitness journey"
• Brand Personality: Intelligent, supportive, motivating, trustworthy
• Competitive Differentiation: Personalized AI coaching vs. generic tracking
• Target Audience: Health-conscious tech adopters seeking personalized guidance

MESSAGING STRATEGY:
• Primary Message: "Your personal AI fitness coach"
• Supporting Messages:
  - "Learns your patterns, adapts to your goals"
  - "Science-backed recommendations, personalized for you"
  - "Transform data into actionable insights"

CONTENT CREATOR DELIVERABLES:
CAMPAIGN COPY:
• Tagline: "Fitness. Personalized. Intelligent."
• App Store Description: "Meet your AI fitness coach that learns from your habits..."
• Social Media Content: 15 posts focusing on personalization benefits
• Email Campaign: 5-part onboarding series highlighting AI features
• Website Copy: Landing page emphasizing AI differentiation

BRAND VOICE GUIDELINES:
• Tone: Encouraging but not pushy, intelligent but accessible
• Style: Clear, benefit-focused, data-informed
• Personality: Supportive coach, not drill sergeant

VISUAL DESIGNER CONCEPTS:
VISUAL IDENTITY:
• Color Palette: Energetic blues and greens with accent orange
• Typography: Modern, clean sans-serif for accessibility
• Logo Concept: Abstract AI brain merged with fitness icon
• Icon System: Consistent style for all app features

DESIGN ASSETS:
• App UI mockups: 12 key screens designed
• Marketing Materials: Social media templates, web banners
• Brand Guidelines: 20-page comprehensive style guide
• Launch Campaign Visuals: Coordinated across all channels

INTEGRATION RECOMMENDATIONS:
• Consistent brand experience across all touchpoints
• A/B testing plan for visual elements
• Accessibility compliance for inclusive design
• Scalable design system for future features
`

// creativeCrisisTemplate is the creative deliverable for crisis runs.
const creativeCrisisTemplate = `
CRISIS COMMUNICATION - RESPONSE STRATEGY
Generated: %s

INCIDENT BRIEF:
%s

COMMUNICATION PRINCIPLES:
• Transparency: Full disclosure of known facts
• Accountability: Accept responsibility and outline remediation
• Empathy: Acknowledge user concerns and impact
• Action-Oriented: Clear steps being taken to resolve

STAKEHOLDER MESSAGING:
• Users: "We detected a security issue and are taking immediate action"
• Media: "We are cooperating fully with authorities and enhancing security"
• Regulators: "We are committed to full compliance and transparency"
• Employees: "We are handling this professionally with all resources"

COMMUNICATION TIMELINE:
• Hour 1: Internal team notification and crisis team activation
• Hour 4: User email notification with immediate action steps
• Hour 8: Website update with comprehensive information
• Hour 12: Press statement and regulatory notifications
• Hour 24: Social media response and FAQ publication

CRISIS CONTENT DELIVERABLES:
• User Notification Email: Clear, actionable, reassuring tone
• Website Crisis Page: Comprehensive FAQ and timeline
• Press Statement: Professional, factual, forward-looking
• Social Media Kit: Consistent messaging across platforms
• Internal Communications: Employee talking points and updates

REPUTATION MANAGEMENT:
• Proactive disclosure to control narrative
• Expert third-party security validation
• User compensation and enhanced protection offers
• Long-term trust rebuilding campaign with transparency reports
`

// technicalTemplate is the standard technical deliverable.
const technicalTemplate = `
TECHNICAL IMPLEMENTATION TEAM OUTPUT
Generated: %s

TECHNICAL REQUIREMENTS:
%s

SYSTEM ARCHITECT DESIGN:
ARCHITECTURE OVERVIEW:
• Platform: Cloud-native mobile app (iOS/Android)
• Backend: Microservices architecture on AWS
• AI/ML: TensorFlow/PyTorch models with real-time inference
• Database: PostgreSQL for user data, MongoDB for analytics
• APIs: RESTful with GraphQL for complex queries

TECHNICAL STACK:
• Frontend: React Native for cross-platform development
• Backend: Node.js with Express framework
• AI/ML: Python-based ML services with Docker containers
• Infrastructure: AWS ECS, RDS, S3, CloudFront
• Monitoring: CloudWatch, DataDog for comprehensive observability

SCALABILITY DESIGN:
• Auto-scaling groups for variable load handling
• CDN for global content delivery
• Database sharding strategy for user growth
• Caching layers (Redis) for performance optimization
• Load balancing across multiple availability zones

DEVELOPER IMPLEMENTATION PLAN:
DEVELOPMENT PHASES:
Phase 1 (Weeks 1-4): Core infrastructure and user management
Phase 2 (Weeks 5-8): AI model integration and basic features
Phase 3 (Weeks 9-12): Advanced features and optimization

TECHNICAL DELIVERABLES:
• User authentication and profile management
• AI model training pipeline and inference API
• Real-time data processing and analytics
• Push notification system
• Social features and community integration
• Comprehensive API documentation

DEVELOPMENT STANDARDS:
• Code review process with automated testing
• CI/CD pipeline with automated deployment
• Security best practices and data encryption
• Performance monitoring and optimization
• Documentation and knowledge sharing protocols

QA ENGINEER TESTING STRATEGY:
TESTING FRAMEWORK:
• Unit Testing: 90%% code coverage requirement
• Integration Testing: API and database interaction validation
• Performance Testing: Load testing for 100K concurrent users
• Security Testing: Penetration testing and vulnerability assessment
• User Acceptance Testing: Beta testing with 1000 users

QUALITY ASSURANCE PLAN:
• Automated testing pipeline integrated with CI/CD
• Manual testing protocols for user experience validation
• Performance benchmarking and optimization
• Security audit and compliance verification
• Bug tracking and resolution workflow

DEPLOYMENT STRATEGY:
• Blue-green deployment for zero-downtime updates
• Feature flags for gradual rollout
• Monitoring and alerting for production issues
• Rollback procedures for critical failures
• Post-deployment validation and health checks
`

// technicalCrisisTemplate is the technical deliverable for crisis runs.
const technicalCrisisTemplate = `
TECHNICAL REMEDIATION - CRISIS RESPONSE
Generated: %s

INCIDENT BRIEF:
%s

IMMEDIATE CONTAINMENT:
• System Isolation: Affected servers taken offline within 30 minutes
• Access Revocation: All API keys and tokens rotated immediately
• Database Lockdown: Read-only mode activated for forensic analysis
• Traffic Monitoring: Enhanced logging and anomaly detection activated

FORENSIC INVESTIGATION:
• Third-Party Security Firm: Engaged within 2 hours for independent analysis
• Log Analysis: Complete audit trail reconstruction and attack vector mapping
• Data Assessment: Verification of actual data accessed vs. potential exposure
• Evidence Preservation: Legal-grade documentation for regulatory compliance

SECURITY ENHANCEMENTS:
• Immediate: WAF rules updated, SQL injection protection enhanced
• Short-term: Multi-factor authentication mandatory for all admin access
• Medium-term: Complete security architecture review and penetration testing
• Long-term: Zero-trust security model implementation

SYSTEM HARDENING:
• Database Security: Parameterized queries, input validation, access controls
• Network Security: VPN-only admin access, network segmentation
• Application Security: Code review, dependency scanning, SAST/DAST
• Infrastructure Security: Container scanning, secrets management

MONITORING & ALERTING:
• Real-time Security Monitoring: 24/7 SOC with immediate escalation
• Automated Threat Detection: ML-based anomaly detection
• Compliance Monitoring: Continuous GDPR/CCPA compliance validation
• Performance Monitoring: Enhanced observability for security events

RECOVERY TIMELINE:
• Hour 1-4: Containment and initial assessment
• Hour 4-24: Forensic analysis and security patching
• Day 1-7: Enhanced monitoring and system hardening
• Week 1-4: Third-party security audit and certification
`

// genericTemplate covers team identifiers without a dedicated generator.
// Placeholders: timestamp, requirements, member names.
const genericTemplate = `
TEAM COLLABORATION OUTPUT
Generated: %s

Requirements Addressed: %s

Team Members: %s

Collaborative Result:
The team has analyzed the requirements and developed a comprehensive approach
addressing all key aspects. Each team member contributed their specialized
expertise to create an integrated solution.

Key Deliverables:
• Requirement analysis and interpretation
• Specialized contributions from each team member
• Integrated approach and recommendations
• Implementation roadmap and next steps
• Quality assurance and validation plan

This output represents the collaborative effort of all team members working
together to address the specified requirements.
`

func researchGenerator(reqs models.Requirements, agents []models.Agent, now time.Time) string {
	tpl := researchTemplate
	if reqs.Crisis() {
		tpl = researchCrisisTemplate
	}
	return fmt.Sprintf(tpl, now.Format(timestampLayout), strings.TrimSpace(reqs.Text()))
}

func creativeGenerator(reqs models.Requirements, agents []models.Agent, now time.Time) string {
	tpl := creativeTemplate
	if reqs.Crisis() {
		tpl = creativeCrisisTemplate
	}
	return fmt.Sprintf(tpl, now.Format(timestampLayout), strings.TrimSpace(reqs.Text()))
}

func technicalGenerator(reqs models.Requirements, agents []models.Agent, now time.Time) string {
	tpl := technicalTemplate
	if reqs.Crisis() {
		tpl = technicalCrisisTemplate
	}
	return fmt.Sprintf(tpl, now.Format(timestampLayout), strings.TrimSpace(reqs.Text()))
}

func genericGenerator(reqs models.Requirements, agents []models.Agent, now time.Time) string {
	names := make([]string, 0, len(agents))
	for _, a := range agents {
		names = append(names, a.Name)
	}
	return fmt.Sprintf(genericTemplate, now.Format(timestampLayout),
		strings.TrimSpace(reqs.Text()), strings.Join(names, ", "))
}
