package budgie

// IRC commands which may be sent or received by a client.
const (
	CmdAccount  = "ACCOUNT"  // account-notify: a user logged in or out of services.
	CmdAway     = "AWAY"     // Set an automatic reply string for any PRIVMSG commands.
	CmdCap      = "CAP"      // IRCv3 capability negotiation.
	CmdError    = "ERROR"    // Report a serious or fatal error to a peer.
	CmdInvite   = "INVITE"   // Invite a user to a channel.
	CmdJoin     = "JOIN"     // Join a channel.
	CmdKick     = "KICK"     // Request the forced removal of a user from a channel.
	CmdList     = "LIST"     // List channels and their topics.
	CmdMetadata = "METADATA" // IRCv3 metadata: out-of-band user profile key/value data.
	CmdMode     = "MODE"     // Change channel or user modes.
	CmdMOTD     = "MOTD"     // Get the Message of the Day.
	CmdNames    = "NAMES"    // List all visible nicknames on a channel.
	CmdNick     = "NICK"     // Define or change a nickname.
	CmdNotice   = "NOTICE"   // Send a notice to specific users or channels.
	CmdPart     = "PART"     // Leave a channel.
	CmdPass     = "PASS"     // Set a connection password.
	CmdPing     = "PING"     // Test for the presence of an active client or server.
	CmdPong     = "PONG"     // Reply to a PING message.
	CmdPrivmsg  = "PRIVMSG"  // Send messages to users or channels.
	CmdProtoctl = "PROTOCTL" // Negotiate protocol extensions such as NAMESX.
	CmdQuit     = "QUIT"     // Terminate the client session.
	CmdSetName  = "SETNAME"  // setname: change the realname field.
	CmdTagMsg   = "TAGMSG"   // Tags-only message (typing notifications, reactions).
	CmdTopic    = "TOPIC"    // Change or view the topic of a channel.
	CmdUser     = "USER"     // Specify the username and realname of a new user.
	CmdWho      = "WHO"      // List a set of users.
	CmdWhoIs    = "WHOIS"    // Get information about a specific user.
)

// Connection registration reply numerics.
const (
	RplWelcome  = "001" // "Welcome to the Internet Relay Network <nick>!<user>@<host>"
	RplYourHost = "002" // "Your host is <servername>, running version <ver>"
	RplCreated  = "003" // "This server was created <date>"
	RplMyInfo   = "004" // "<servername> <version> <usermodes> <chanmodes>"
	RplISupport = "005" // advertised server features, including PREFIX and CHANTYPES
)

// Command reply numerics.
const (
	RplUModeIs       = "221" // "<user mode string>"
	RplAway          = "301" // "<nick> :<away message>"
	RplUnAway        = "305" // ":You are no longer marked as being away"
	RplNowAway       = "306" // ":You have been marked as being away"
	RplWhoIsUser     = "311" // "<nick> <user> <host> * :<real name>"
	RplWhoIsServer   = "312" // "<nick> <server> :<server info>"
	RplEndOfWho      = "315" // "<name> :End of WHO list"
	RplEndOfWhoIs    = "318" // "<nick> :End of WHOIS list"
	RplWhoIsChannels = "319" // "<nick> :*( ( "@" / "+" ) <channel> " " )"
	RplListStart     = "321" // obsolete
	RplList          = "322" // "<channel> <# visible> :<topic>"
	RplListEnd       = "323" // ":End of LIST"
	RplChannelModeIs = "324" // "<channel> <mode> <mode params>"
	RplNoTopic       = "331" // "<channel> :No topic is set"
	RplTopic         = "332" // "<channel> :<topic>"
	RplTopicWhoTime  = "333" // "<channel> <nick> <setat>" (de-facto standard)
	RplWhoReply      = "352" // "<channel> <user> <host> <server> <nick> <flags> :<hopcount> <realname>"
	RplNamReply      = "353" // "( "=" / "*" / "@" ) <channel> :[prefix]<nick> ..."
	RplEndOfNames    = "366" // "<channel> :End of NAMES list"
	RplMOTD          = "372" // ":- <text>"
	RplMOTDStart     = "375" // ":- <server> Message of the day -"
	RplEndOfMOTD     = "376" // ":End of MOTD command"
	RplHostHidden    = "396" // "<nick> <host> :is now your displayed host"
)

// Error reply numerics.
const (
	RplErrNoSuchNick        = "401" // "<nickname> :No such nick/channel"
	RplErrNoSuchChannel     = "403" // "<channel name> :No such channel"
	RplErrCannotSendToChan  = "404" // "<channel name> :Cannot send to channel"
	RplErrUnknownCommand    = "421" // "<command> :Unknown command"
	RplErrNoMOTD            = "422" // ":MOTD File is missing"
	RplErrErroneousNickname = "432" // "<client> <nick> :Erroneus nickname"
	RplErrNicknameInUse     = "433" // "<client> <nick> :Nickname is already in use"
	RplErrNotOnChannel      = "442" // "<channel> :You're not on that channel"
	RplErrNotRegistered     = "451" // ":You have not registered"
	RplErrNeedMoreParams    = "461" // "<command> :Not enough parameters"
	RplErrAlreadyRegistered = "462" // ":Unauthorized command (already registered)"
	RplErrChanOPrivsNeeded  = "482" // "<channel> :You're not channel operator"
)

// IRCv3 METADATA numerics (draft).
const (
	RplWhoisKeyValue = "760" // "<target> <key> <visibility> :<value>"
	RplKeyValue      = "761" // "<target> <key> <visibility> :<value>"
	RplMetadataEnd   = "762" // ":end of metadata"
	RplErrKeyInvalid = "767" // "<key> :invalid metadata key"
	RplErrKeyNotSet  = "766" // "<target> <key> :key not set"
)

// Client-to-Client Protocol command constants. These are never sent by a
// server; they replace CTCP-formatted PRIVMSG and NOTICE commands after the
// kernel has unwrapped them.
const (
	CTCPAction       = "_CTCP_QUERY_ACTION"
	CTCPVersionQuery = "_CTCP_QUERY_VERSION"
	CTCPVersionReply = "_CTCP_REPLY_VERSION"
	CTCPPingQuery    = "_CTCP_QUERY_PING"
	CTCPPingReply    = "_CTCP_REPLY_PING"
	CTCPTimeQuery    = "_CTCP_QUERY_TIME"
	CTCPTimeReply    = "_CTCP_REPLY_TIME"
)
